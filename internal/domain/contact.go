package domain

import "errors"

// Contact entity validation errors.
var (
	ErrEmptyFirstName   = errors.New("first name cannot be empty")
	ErrFirstNameTooLong = errors.New("first name must be at most 100 characters long")
	ErrLastNameTooLong  = errors.New("last name must be at most 100 characters long")
	ErrEmailTooLong     = errors.New("email must be at most 200 characters long")
	ErrPhoneTooLong     = errors.New("phone must be at most 20 characters long")
	ErrEmptyOwner       = errors.New("contact owner cannot be empty")
)

// Contact represents a person record owned by exactly one user, identified
// by that user's username. LastName, Email and Phone are optional and empty
// when unset.
type Contact struct {
	ID        int64  `json:"id"`
	Username  string `json:"-"` // Owner; never exposed in responses
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Validate checks that the Contact is storable.
func (c *Contact) Validate() error {
	if c.Username == "" {
		return ErrEmptyOwner
	}
	if c.FirstName == "" {
		return ErrEmptyFirstName
	}
	if len(c.FirstName) > 100 {
		return ErrFirstNameTooLong
	}
	if len(c.LastName) > 100 {
		return ErrLastNameTooLong
	}
	if len(c.Email) > 200 {
		return ErrEmailTooLong
	}
	if len(c.Phone) > 20 {
		return ErrPhoneTooLong
	}
	return nil
}
