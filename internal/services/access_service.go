package services

import (
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

// AccessModel is the Casbin model for the role/resource/action-scope
// table. The fields token carries the allowed-field list and takes no part
// in matching.
const AccessModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, fields

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Enforcer is the slice of casbin.Enforcer the gate needs.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// AccessServiceImpl implements domain.AccessService on a Casbin enforcer
// seeded from the static permission table.
type AccessServiceImpl struct {
	enforcer Enforcer
}

// NewAccessService creates the capability gate.
func NewAccessService(enforcer Enforcer) domain.AccessService {
	return &AccessServiceImpl{enforcer: enforcer}
}

// Can reports whether the principal may perform the action on the
// resource. The gate fails closed: unknown roles, resources or actions
// deny, and an enforcer failure denies rather than erring open. An "own"
// scope additionally requires the principal to be the target.
func (s *AccessServiceImpl) Can(principal domain.Principal, action domain.ActionScope, resource domain.Resource, targetID uuid.UUID) error {
	if !domain.ValidRole(principal.Role) {
		return domain.ErrPermissionDenied
	}

	ok, err := s.enforcer.Enforce(string(principal.Role), string(resource), string(action))
	if err != nil || !ok {
		return domain.ErrPermissionDenied
	}

	if action.OwnScope() && principal.ID != targetID {
		return domain.ErrPermissionDenied
	}

	return nil
}

// NewMemoryEnforcer builds an adapter-less enforcer seeded from the
// permission table. Production wiring attaches a persistent adapter
// instead; tests use this directly.
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(AccessModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := SeedPolicies(e); err != nil {
		return nil, err
	}
	return e, nil
}

// SeedPolicies replaces the enforcer's policies with the static permission
// table. The table never changes at runtime, so this runs exactly once at
// process start.
func SeedPolicies(e *casbin.Enforcer) error {
	e.ClearPolicy()
	for role, resources := range domain.PermissionTable {
		for resource, actions := range resources {
			for action, fields := range actions {
				if _, err := e.AddPolicy(string(role), string(resource), string(action), strings.Join(fields, ",")); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
