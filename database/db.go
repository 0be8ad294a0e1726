package database

import (
	"fmt"
	"os"

	"customer-records/logger"
	"customer-records/models/address"
	"customer-records/models/customer"
	"customer-records/models/log"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection, migrates the schema and installs
// the cascade constraint and indexes. The returned handle is passed down to
// the controllers; nothing reads it from a package global.
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(db); err != nil {
		logger.Error("Failed to migrate database schema", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(db); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return db, nil
}

// Migrate runs auto migration for all models, parents before children
func Migrate(db *gorm.DB) error {
	// Stage 1: parent tables
	stage1Models := []interface{}{
		&customer.Customer{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: tables referencing Stage 1
	stage2Models := []interface{}{
		&address.Address{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Remaining models
	remainingModels := []interface{}{
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints(db *gorm.DB) error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_addresses_customer",
			sql: `ALTER TABLE addresses ADD CONSTRAINT fk_addresses_customer
				  FOREIGN KEY (customer_id) REFERENCES customers(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := db.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	// Customer indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_customers_phone_number ON customers(phone_number)").Error; err != nil {
		return fmt.Errorf("failed to create customer phone_number index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_customers_first_name ON customers(first_name)").Error; err != nil {
		return fmt.Errorf("failed to create customer first_name index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_customers_last_name ON customers(last_name)").Error; err != nil {
		return fmt.Errorf("failed to create customer last_name index: %w", err)
	}

	// Address indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_addresses_customer_id ON addresses(customer_id)").Error; err != nil {
		return fmt.Errorf("failed to create address customer_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_addresses_city ON addresses(city)").Error; err != nil {
		return fmt.Errorf("failed to create address city index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_addresses_state ON addresses(state)").Error; err != nil {
		return fmt.Errorf("failed to create address state index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_addresses_pin_code ON addresses(pin_code)").Error; err != nil {
		return fmt.Errorf("failed to create address pin_code index: %w", err)
	}

	// Log indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}
