package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cleversamer/accountsvc/domain"
)

// ContextAccount is the gin context key the authenticated account is
// stored under.
const ContextAccount = "account"

// AuthMW wraps the token service and account repository for middleware.
type AuthMW struct {
	tokenSvc domain.TokenService
	accounts domain.AccountRepository
}

// NewAuthMW creates new auth middleware wrapper.
func NewAuthMW(tokenSvc domain.TokenService, accounts domain.AccountRepository) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		accounts: accounts,
	}
}

// WithToken authenticates the request from its Bearer token. Beyond the
// signature, the token's password digest must match a digest re-derived
// from the account's current hash — a token minted before a password
// change fails here even though its signature still checks out.
func (mw *AuthMW) WithToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, domain.ErrInvalidToken)
			return
		}

		claims, err := mw.tokenSvc.Parse(parts[1])
		if err != nil {
			abortWithError(c, domain.ErrInvalidToken)
			return
		}

		account, err := mw.accounts.FindByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			abortWithError(c, domain.ErrInvalidToken)
			return
		}

		if mw.tokenSvc.Digest(account.PasswordHash) != claims.PasswordDigest {
			abortWithError(c, domain.ErrInvalidToken)
			return
		}

		c.Set(ContextAccount, account)
		c.Next()
	}
}

// AccountFrom extracts the authenticated account set by WithToken.
func AccountFrom(c *gin.Context) (*domain.Account, bool) {
	v, ok := c.Get(ContextAccount)
	if !ok {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok
}

func abortWithError(c *gin.Context, err *domain.Error) {
	c.AbortWithStatusJSON(err.Status, gin.H{
		"status":  "error",
		"kind":    err.Kind,
		"message": err.Message,
	})
}
