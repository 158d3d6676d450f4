package api

import "github.com/phrazzld/rolodex-api/internal/domain"

// Request structures. The validate tags are the single source of truth for
// each operation's field constraints.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Name     string `json:"name"     validate:"required,max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest defines the payload for the profile update endpoint.
// Both fields are optional; absent fields are left unchanged. The username
// is fixed from the authenticated context, never from the body.
type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,max=100"`
}

// ContactRequest defines the payload for contact create and update.
type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
	Email     string `json:"email"      validate:"omitempty,email,max=200"`
	Phone     string `json:"phone"      validate:"omitempty,max=20"`
}

// AddressRequest defines the payload for address create. Address fields are
// validated by the address service rather than the handler; see
// service.AddressInput for the constraints.
type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// UpdateAddressRequest defines the payload for address update. The target
// address is identified by the id field in the body, not a path parameter.
type UpdateAddressRequest struct {
	ID int64 `json:"id"`
	AddressRequest
}

// Response structures. These are the public projections of the domain
// entities; internal fields (password hash, owner keys) never appear.

// UserResponse is the public projection of a user.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TokenResponse is the login success payload.
type TokenResponse struct {
	Token string `json:"token"`
}

// ContactResponse is the public projection of a contact.
type ContactResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// AddressResponse is the public projection of an address.
type AddressResponse struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}
}

func newContactResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
	}
}

func newContactResponses(contacts []domain.Contact) []ContactResponse {
	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, newContactResponse(&contacts[i]))
	}
	return responses
}

func newAddressResponse(address *domain.Address) AddressResponse {
	return AddressResponse{
		ID:         address.ID,
		Street:     address.Street,
		City:       address.City,
		Province:   address.Province,
		Country:    address.Country,
		PostalCode: address.PostalCode,
	}
}
