package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
	"github.com/cleversamer/accountsvc/internal/services"
)

func accessTestRouter(t *testing.T, account *domain.Account) *gin.Engine {
	t.Helper()

	enforcer, err := services.NewMemoryEnforcer()
	if err != nil {
		t.Fatalf("NewMemoryEnforcer() error = %v", err)
	}
	gate := NewAccessMW(services.NewAccessService(enforcer))

	r := gin.New()
	inject := func(c *gin.Context) {
		if account != nil {
			c.Set(ContextAccount, account)
		}
	}
	r.GET("/me", inject, gate.Require(domain.ReadOwn, domain.ResourceAccount), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.PATCH("/admin/role", inject, gate.Require(domain.UpdateAny, domain.ResourceRole), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/accounts/:id", inject, gate.RequireOn(domain.ReadAny, domain.ResourceAccount, "id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAccessMW_Require(t *testing.T) {
	user := &domain.Account{ID: uuid.New(), Role: domain.RoleUser}
	admin := &domain.Account{ID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name       string
		account    *domain.Account
		method     string
		path       string
		wantStatus int
	}{
		{"user reads own account", user, http.MethodGet, "/me", http.StatusOK},
		{"user cannot assign roles", user, http.MethodPatch, "/admin/role", http.StatusForbidden},
		{"admin assigns roles", admin, http.MethodPatch, "/admin/role", http.StatusOK},
		{"no authenticated account", nil, http.MethodGet, "/me", http.StatusUnauthorized},
		{"admin reads any by id", admin, http.MethodGet, "/accounts/" + uuid.NewString(), http.StatusOK},
		{"user cannot read others by id", user, http.MethodGet, "/accounts/" + uuid.NewString(), http.StatusForbidden},
		{"malformed target id denies", admin, http.MethodGet, "/accounts/not-a-uuid", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := accessTestRouter(t, tt.account)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
