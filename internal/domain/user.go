package domain

import "errors"

// User entity validation errors.
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooLong     = errors.New("username must be at most 100 characters long")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNameTooLong         = errors.New("name must be at most 100 characters long")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 100 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. The username is the primary business
// key; Token holds the opaque bearer credential issued at login, or nil when
// the user is logged out.
type User struct {
	Username       string  `json:"username"`
	HashedPassword string  `json:"-"` // Never expose the password hash in JSON
	Name           string  `json:"name"`
	Token          *string `json:"-"`
}

// NewUser creates a User with the given username and name. The caller is
// responsible for hashing the password and setting HashedPassword before
// the user is stored.
func NewUser(username, name string) *User {
	return &User{
		Username: username,
		Name:     name,
	}
}

// Validate checks that the User is storable: identity fields present and
// within column limits, and a password hash set.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > 100 {
		return ErrUsernameTooLong
	}
	if u.Name == "" {
		return ErrEmptyName
	}
	if len(u.Name) > 100 {
		return ErrNameTooLong
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}
