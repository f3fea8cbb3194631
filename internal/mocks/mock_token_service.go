package mocks

import (
	"github.com/cleversamer/accountsvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(account *domain.Account) (string, error)
	ParseFunc    func(token string) (*domain.SessionClaims, error)
	DigestFunc   func(passwordHash string) string
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate mints a session token for the account
func (m *MockTokenService) Generate(account *domain.Account) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(account)
	}
	// Default behavior: opaque token derived from the account id
	return "token_" + account.ID.String(), nil
}

// Parse extracts session claims from a token
func (m *MockTokenService) Parse(token string) (*domain.SessionClaims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	// Default behavior: reject everything
	return nil, domain.ErrInvalidToken
}

// Digest derives the salted password-hash representation bound into tokens
func (m *MockTokenService) Digest(passwordHash string) string {
	if m.DigestFunc != nil {
		return m.DigestFunc(passwordHash)
	}
	// Default behavior: identity digest
	return "digest_" + passwordHash
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
