package seeders

import (
	"log"

	addressModel "customer-records/models/address"
	customerModel "customer-records/models/customer"

	"gorm.io/gorm"
)

type seedCustomer struct {
	customerModel.Customer
	addresses []addressModel.Address
}

// SeedCustomers inserts a small demo data set for local development.
// Customers are keyed by phone number: existing rows are left alone.
func SeedCustomers(db *gorm.DB) {
	log.Printf("🔍 Checking demo customer data...")

	seeds := []seedCustomer{
		{
			Customer: customerModel.Customer{FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "555-0100"},
			addresses: []addressModel.Address{
				{AddressDetails: "10 Downing St", City: "London", State: "LDN", PinCode: "SW1A2AA"},
				{AddressDetails: "2 Rue Morgue", City: "Paris", State: "IDF", PinCode: "75001"},
			},
		},
		{
			Customer: customerModel.Customer{FirstName: "Grace", LastName: "Hopper", PhoneNumber: "555-0101"},
			addresses: []addressModel.Address{
				{AddressDetails: "1 Navy Yard", City: "Arlington", State: "VA", PinCode: "22202"},
			},
		},
		{
			Customer: customerModel.Customer{FirstName: "Alan", LastName: "Turing", PhoneNumber: "555-0102"},
			addresses: []addressModel.Address{
				{AddressDetails: "Bletchley Park", City: "Milton Keynes", State: "BKM", PinCode: "MK31EB"},
			},
		},
	}

	var existingPhones []string
	if err := db.Model(&customerModel.Customer{}).Pluck("phone_number", &existingPhones).Error; err != nil {
		log.Printf("❌ Failed to fetch existing phone numbers: %v", err)
		return
	}
	existing := make(map[string]bool, len(existingPhones))
	for _, phone := range existingPhones {
		existing[phone] = true
	}

	seeded := 0
	for _, seed := range seeds {
		if existing[seed.PhoneNumber] {
			continue
		}

		record := seed.Customer
		if err := db.Create(&record).Error; err != nil {
			log.Printf("❌ Failed to seed customer %s %s: %v", record.FirstName, record.LastName, err)
			continue
		}
		for _, addr := range seed.addresses {
			addr.CustomerID = record.ID
			if err := db.Create(&addr).Error; err != nil {
				log.Printf("❌ Failed to seed address in %s for customer %d: %v", addr.City, record.ID, err)
			}
		}
		seeded++
	}

	if seeded == 0 {
		log.Printf("✅ All demo customers already present. No seeding needed.")
		return
	}
	log.Printf("🎉 Seeding completed! Inserted %d demo customers", seeded)
}
