package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

// AccessMW guards routes with the capability gate.
type AccessMW struct {
	access domain.AccessService
}

// NewAccessMW creates new access middleware wrapper.
func NewAccessMW(access domain.AccessService) *AccessMW {
	return &AccessMW{access: access}
}

// Require aborts the request unless the authenticated account may perform
// action on resource. For own-scoped actions the target is the principal
// itself; routes acting on another account use RequireOn.
func (mw *AccessMW) Require(action domain.ActionScope, resource domain.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := AccountFrom(c)
		if !ok {
			abortWithError(c, domain.ErrInvalidToken)
			return
		}

		principal := domain.Principal{ID: account.ID, Role: account.Role}
		if err := mw.access.Can(principal, action, resource, account.ID); err != nil {
			abortWithError(c, domain.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}

// RequireOn is Require with the target account resolved from a route
// parameter, for admin routes that operate on arbitrary accounts.
func (mw *AccessMW) RequireOn(action domain.ActionScope, resource domain.Resource, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := AccountFrom(c)
		if !ok {
			abortWithError(c, domain.ErrInvalidToken)
			return
		}

		targetID, err := uuid.Parse(c.Param(idParam))
		if err != nil {
			abortWithError(c, domain.ErrPermissionDenied)
			return
		}

		principal := domain.Principal{ID: account.ID, Role: account.Role}
		if err := mw.access.Can(principal, action, resource, targetID); err != nil {
			abortWithError(c, domain.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}
