package customer

import (
	"customer-records/models/address"
	"time"
)

// Customer represents a customer record with its owned postal addresses
type Customer struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName    string `gorm:"type:varchar(255);not null" json:"last_name"`
	PhoneNumber string `gorm:"type:varchar(20);not null;unique" json:"phone_number"`

	// One-to-many relationship; rows are removed together with the customer
	Addresses []address.Address `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"addresses,omitempty"`

	// Number of addresses currently owned by the customer. Computed by the
	// list query, never stored.
	AddressCount int64 `gorm:"-" json:"address_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
