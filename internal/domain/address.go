package domain

import "errors"

// Address entity validation errors.
var (
	ErrEmptyCountry       = errors.New("country cannot be empty")
	ErrCountryTooLong     = errors.New("country must be at most 100 characters long")
	ErrEmptyPostalCode    = errors.New("postal code cannot be empty")
	ErrPostalCodeTooLong  = errors.New("postal code must be at most 10 characters long")
	ErrInvalidContactLink = errors.New("address must reference a contact")
)

// Address represents a postal address owned by exactly one contact. Street,
// City and Province are optional; Country and PostalCode are required.
type Address struct {
	ID         int64  `json:"id"`
	ContactID  int64  `json:"-"` // Owning contact; implied by the request path
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Validate checks that the Address is storable.
func (a *Address) Validate() error {
	if a.ContactID <= 0 {
		return ErrInvalidContactLink
	}
	if a.Country == "" {
		return ErrEmptyCountry
	}
	if len(a.Country) > 100 {
		return ErrCountryTooLong
	}
	if a.PostalCode == "" {
		return ErrEmptyPostalCode
	}
	if len(a.PostalCode) > 10 {
		return ErrPostalCodeTooLong
	}
	return nil
}
