package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
	"github.com/cleversamer/accountsvc/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter(t *testing.T) (*gin.Engine, *mocks.MockAccountRepository, *mocks.MockTokenService) {
	t.Helper()

	accounts := mocks.NewMockAccountRepository()
	tokens := mocks.NewMockTokenService()
	mw := NewAuthMW(tokens, accounts)

	r := gin.New()
	r.GET("/protected", mw.WithToken(), func(c *gin.Context) {
		account, _ := AccountFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": account.ID})
	})
	return r, accounts, tokens
}

func TestAuthMW_WithToken(t *testing.T) {
	account := &domain.Account{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "hash-v1",
	}

	validClaims := func(tokens *mocks.MockTokenService) {
		tokens.ParseFunc = func(token string) (*domain.SessionClaims, error) {
			if token != "valid" {
				return nil, domain.ErrInvalidToken
			}
			return &domain.SessionClaims{
				AccountID:      account.ID,
				Email:          account.Email,
				PasswordDigest: "digest_hash-v1",
			}, nil
		}
	}

	tests := []struct {
		name       string
		header     string
		setup      func(accounts *mocks.MockAccountRepository, tokens *mocks.MockTokenService)
		wantStatus int
	}{
		{
			name:   "valid token",
			header: "Bearer valid",
			setup: func(accounts *mocks.MockAccountRepository, tokens *mocks.MockTokenService) {
				accounts.Seed(account)
				validClaims(tokens)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			setup:      func(accounts *mocks.MockAccountRepository, tokens *mocks.MockTokenService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer scheme",
			header:     "Basic dXNlcjpwYXNz",
			setup:      func(accounts *mocks.MockAccountRepository, tokens *mocks.MockTokenService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "parse rejects",
			header:     "Bearer bogus",
			setup:      func(accounts *mocks.MockAccountRepository, tokens *mocks.MockTokenService) { validClaims(tokens) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "account gone",
			header: "Bearer valid",
			setup: func(accounts *mocks.MockAccountRepository, tokens *mocks.MockTokenService) {
				validClaims(tokens)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "password rotated since issuance",
			header: "Bearer valid",
			setup: func(accounts *mocks.MockAccountRepository, tokens *mocks.MockTokenService) {
				rotated := *account
				rotated.PasswordHash = "hash-v2"
				accounts.Seed(&rotated)
				validClaims(tokens)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, accounts, tokens := authTestRouter(t)
			tt.setup(accounts, tokens)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
