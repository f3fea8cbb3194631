package mocks

import (
	"context"

	"github.com/cleversamer/accountsvc/domain"
)

// MockIdentityVerifier implements domain.IdentityVerifier interface for testing
type MockIdentityVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (*domain.ExternalIdentity, error)
}

// NewMockIdentityVerifier creates a new MockIdentityVerifier with default behaviors
func NewMockIdentityVerifier() *MockIdentityVerifier {
	return &MockIdentityVerifier{}
}

// Verify validates the external token
func (m *MockIdentityVerifier) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	// Default behavior: reject everything
	return nil, domain.ErrInvalidExternalToken
}

// Compile-time interface compliance verification
var _ domain.IdentityVerifier = (*MockIdentityVerifier)(nil)
