package domain

// Resource is a closed set of keys the capability gate rules on.
type Resource string

const (
	ResourceAccount       Resource = "account"
	ResourceEmailCode     Resource = "emailVerificationCode"
	ResourcePhoneCode     Resource = "phoneVerificationCode"
	ResourcePassword      Resource = "password"
	ResourceNotifications Resource = "notifications"
	ResourceRole          Resource = "role"
)

// ActionScope is an action paired with an ownership scope. "Own" requires
// the principal and target identifiers to match; "Any" does not.
type ActionScope string

const (
	CreateAny ActionScope = "create:any"
	ReadOwn   ActionScope = "read:own"
	ReadAny   ActionScope = "read:any"
	UpdateOwn ActionScope = "update:own"
	UpdateAny ActionScope = "update:any"
	DeleteOwn ActionScope = "delete:own"
	DeleteAny ActionScope = "delete:any"
)

// OwnScope reports whether the scope restricts the action to the
// principal's own account.
func (a ActionScope) OwnScope() bool {
	switch a {
	case ReadOwn, UpdateOwn, DeleteOwn:
		return true
	}
	return false
}

// FieldSet lists the fields a grant covers. AllFields means no field-level
// narrowing applies.
type FieldSet []string

// AllFields is the wildcard field set.
var AllFields = FieldSet{"*"}

// PermissionTable is the static role → resource → action-scope grant
// table. It is read-only after process start; concurrent reads need no
// synchronization. Absent entries deny.
var PermissionTable = map[Role]map[Resource]map[ActionScope]FieldSet{
	RoleUser: {
		ResourceAccount: {
			ReadOwn:   AllFields,
			UpdateOwn: AllFields,
		},
		ResourceEmailCode: {
			ReadOwn:   AllFields,
			UpdateOwn: AllFields,
		},
		ResourcePhoneCode: {
			ReadOwn:   AllFields,
			UpdateOwn: AllFields,
		},
		ResourcePassword: {
			UpdateOwn: AllFields,
		},
		ResourceNotifications: {
			ReadOwn:   AllFields,
			UpdateOwn: AllFields,
			DeleteOwn: AllFields,
		},
	},
	RoleAdmin: {
		ResourceAccount: {
			ReadOwn:   AllFields,
			ReadAny:   AllFields,
			UpdateOwn: AllFields,
			UpdateAny: AllFields,
		},
		ResourceEmailCode: {
			ReadOwn:   AllFields,
			UpdateOwn: AllFields,
			UpdateAny: AllFields,
		},
		ResourcePhoneCode: {
			ReadOwn:   AllFields,
			UpdateOwn: AllFields,
			UpdateAny: AllFields,
		},
		ResourcePassword: {
			UpdateOwn: AllFields,
		},
		ResourceNotifications: {
			ReadOwn:   AllFields,
			UpdateOwn: AllFields,
			DeleteOwn: AllFields,
			CreateAny: AllFields,
		},
		ResourceRole: {
			UpdateAny: AllFields,
		},
	},
}
