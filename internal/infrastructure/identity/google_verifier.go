package identity

import (
	"context"
	"strings"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/cleversamer/accountsvc/domain"
)

// GoogleVerifierImpl implements domain.IdentityVerifier against Google's
// tokeninfo endpoint.
type GoogleVerifierImpl struct {
	clientID string
}

// NewGoogleVerifier creates a Google ID-token verifier. clientID is the
// OAuth audience tokens must be issued for.
func NewGoogleVerifier(clientID string) domain.IdentityVerifier {
	return &GoogleVerifierImpl{clientID: clientID}
}

// Verify implements domain.IdentityVerifier. A provider outage maps to
// ErrExternalAuthUnavailable, a rejected or mis-audienced token to
// ErrInvalidExternalToken.
func (g *GoogleVerifierImpl) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	service, err := oauth2.NewService(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, domain.ErrExternalAuthUnavailable
	}

	info, err := service.Tokeninfo().IdToken(token).Context(ctx).Do()
	if err != nil {
		return nil, domain.ErrInvalidExternalToken
	}
	if info.Email == "" || (g.clientID != "" && info.Audience != g.clientID) {
		return nil, domain.ErrInvalidExternalToken
	}

	// Tokeninfo carries no display name; fall back to the mailbox part so
	// new accounts always have one.
	name := info.Email
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}

	return &domain.ExternalIdentity{Email: info.Email, Name: name}, nil
}
