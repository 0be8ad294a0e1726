package customer

import (
	"errors"
	"fmt"
	"strings"

	addressModel "customer-records/models/address"
	customerModel "customer-records/models/customer"
	addressTypes "customer-records/types/address"
	customerTypes "customer-records/types/customer"

	"gorm.io/gorm"
)

// Domain errors surfaced to the controllers. Anything else coming out of
// the service is an unexpected store failure.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrDuplicatePhone   = errors.New("phone number already exists")
)

// Service handles customer and address persistence
type Service struct {
	DB *gorm.DB
}

// NewCustomerService creates a new customer service
func NewCustomerService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Create stores a new customer record
func (s *Service) Create(req customerTypes.StoreCustomerRequest) (*customerModel.Customer, error) {
	record := customerModel.Customer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}

	if err := s.DB.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePhone
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return &record, nil
}

// Get loads a single customer by id
func (s *Service) Get(id uint) (*customerModel.Customer, error) {
	var record customerModel.Customer
	if err := s.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return &record, nil
}

// Update replaces the mutable fields of a customer in place
func (s *Service) Update(id uint, req customerTypes.StoreCustomerRequest) (*customerModel.Customer, error) {
	result := s.DB.Model(&customerModel.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_name":   req.FirstName,
		"last_name":    req.LastName,
		"phone_number": req.PhoneNumber,
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ErrDuplicatePhone
		}
		return nil, fmt.Errorf("failed to update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCustomerNotFound
	}

	return s.Get(id)
}

// Delete removes a customer together with every address it owns. Both
// deletes run in one transaction so no address can outlive its customer.
func (s *Service) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&addressModel.Address{}).Error; err != nil {
			return fmt.Errorf("failed to delete customer addresses: %w", err)
		}

		result := tx.Delete(&customerModel.Customer{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete customer: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCustomerNotFound
		}
		return nil
	})
}

// AddAddress stores a new address owned by the given customer
func (s *Service) AddAddress(customerID uint, req addressTypes.StoreAddressRequest) (*addressModel.Address, error) {
	if _, err := s.Get(customerID); err != nil {
		return nil, err
	}

	record := addressModel.Address{
		CustomerID:     customerID,
		AddressDetails: req.AddressDetails,
		City:           req.City,
		State:          req.State,
		PinCode:        req.PinCode,
	}

	if err := s.DB.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return &record, nil
}

// ListAddresses loads every address owned by the given customer
func (s *Service) ListAddresses(customerID uint) ([]addressModel.Address, error) {
	var records []addressModel.Address
	err := s.DB.Where("customer_id = ?", customerID).Order("id asc").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return records, nil
}

// UpdateAddress replaces the mutable fields of an address by its own id
func (s *Service) UpdateAddress(id uint, req addressTypes.StoreAddressRequest) (*addressModel.Address, error) {
	result := s.DB.Model(&addressModel.Address{}).Where("id = ?", id).Updates(map[string]interface{}{
		"address_details": req.AddressDetails,
		"city":            req.City,
		"state":           req.State,
		"pin_code":        req.PinCode,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAddressNotFound
	}

	var record addressModel.Address
	if err := s.DB.First(&record, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load updated address: %w", err)
	}
	return &record, nil
}

// DeleteAddress removes a single address, leaving the owning customer and
// its sibling addresses untouched
func (s *Service) DeleteAddress(id uint) error {
	result := s.DB.Delete(&addressModel.Address{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is the store's uniqueness-violation
// signal. GORM translates it when the driver supports that; the message
// check covers Postgres and SQLite when it does not.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
