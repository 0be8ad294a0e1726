package address

import (
	"time"
)

// Address represents a postal address owned by exactly one customer
type Address struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID     uint   `gorm:"not null;index" json:"customer_id"`
	AddressDetails string `gorm:"type:text;not null" json:"address_details"`
	City           string `gorm:"type:varchar(255);not null" json:"city"`
	State          string `gorm:"type:varchar(255);not null" json:"state"`
	PinCode        string `gorm:"type:varchar(20);not null" json:"pin_code"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
