package address

import "github.com/go-playground/validator/v10"

// StoreAddressRequest is the payload for creating or updating an address
type StoreAddressRequest struct {
	AddressDetails string `json:"address_details" validate:"required,min=1"`
	City           string `json:"city" validate:"required,min=1,max=255"`
	State          string `json:"state" validate:"required,min=1,max=255"`
	PinCode        string `json:"pin_code" validate:"required,min=1,max=20"`
}

func (req *StoreAddressRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
