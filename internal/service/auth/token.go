package auth

import "github.com/google/uuid"

// TokenGenerator produces opaque bearer tokens. Tokens carry no claims and
// are not signed; they are stored on the user row and equality-compared per
// request.
type TokenGenerator interface {
	// Generate returns a new opaque token.
	Generate() string
}

// UUIDTokenGenerator implements TokenGenerator with random UUIDv4 strings.
type UUIDTokenGenerator struct{}

// NewUUIDTokenGenerator creates a new UUIDTokenGenerator.
func NewUUIDTokenGenerator() *UUIDTokenGenerator {
	return &UUIDTokenGenerator{}
}

// Generate implements the TokenGenerator interface.
func (g *UUIDTokenGenerator) Generate() string {
	return uuid.NewString()
}
