package customer

import "github.com/go-playground/validator/v10"

// StoreCustomerRequest is the payload for creating or updating a customer
type StoreCustomerRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=1,max=255"`
	LastName    string `json:"last_name" validate:"required,min=1,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,min=1,max=20"`
}

func (req *StoreCustomerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

// ListCustomersQuery holds the query parameters accepted by the list endpoint.
// The facet fields collapse into one search phrase before filtering.
type ListCustomersQuery struct {
	Search  string
	City    string
	State   string
	PinCode string
	SortBy  string
	Order   string
	Page    int
	Limit   int
}
