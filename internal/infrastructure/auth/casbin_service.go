package auth

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/cleversamer/accountsvc/internal/services"
)

// CasbinService owns the enforcer backing the capability gate. Policies
// are persisted through the GORM adapter but the static permission table
// is the source of truth: every start reseeds from it.
type CasbinService struct{ E *casbin.Enforcer }

func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(services.AccessModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := services.SeedPolicies(e); err != nil {
		return nil, err
	}
	if err := e.SavePolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{e}, nil
}
