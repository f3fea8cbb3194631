package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is one of the fixed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// SupportedRoles lists every valid role. The first entry is the default
// assigned at registration.
var SupportedRoles = []Role{RoleUser, RoleAdmin}

// DefaultRole returns the role assigned when none is requested.
func DefaultRole() Role { return SupportedRoles[0] }

// ValidRole reports whether r belongs to the supported set.
func ValidRole(r Role) bool {
	for _, s := range SupportedRoles {
		if s == r {
			return true
		}
	}
	return false
}

// Purpose identifies one of the three independent verification slots.
type Purpose string

const (
	PurposeEmail    Purpose = "email"
	PurposePhone    Purpose = "phone"
	PurposePassword Purpose = "password"
)

// NormalizePurpose maps free-form input onto a known purpose, falling back
// to email for anything unrecognized.
func NormalizePurpose(s string) Purpose {
	switch Purpose(strings.ToLower(strings.TrimSpace(s))) {
	case PurposePhone:
		return PurposePhone
	case PurposePassword:
		return PurposePassword
	default:
		return PurposeEmail
	}
}

// Phone is an international calling code plus the national significant
// number. Uniqueness is enforced on the concatenation.
type Phone struct {
	ICC string
	NSN string
}

// Full returns the composed number, e.g. "+15551234".
func (p Phone) Full() string { return p.ICC + p.NSN }

// Equal compares both components.
func (p Phone) Equal(o Phone) bool { return p.ICC == o.ICC && p.NSN == o.NSN }

// VerificationSlot holds the code currently armed for one purpose. Each
// issuance overwrites the previous code and expiry together, so re-issuing
// invalidates the old code even if it has not expired.
type VerificationSlot struct {
	Code      string
	ExpiresAt time.Time
}

// Armed reports whether a code has been issued for this slot.
func (s VerificationSlot) Armed() bool { return s.Code != "" }

// Notification is one entry in the account's bounded notification list.
// Entries are ordered most recent first.
type Notification struct {
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Seen      bool              `json:"seen"`
	CreatedAt time.Time         `json:"created_at"`
}

// Account is the identity root. It is a plain value; behavior lives in the
// services that take it by reference and persist it through the repository.
type Account struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Phone         Phone
	PasswordHash  string
	Role          Role
	AvatarURL     string
	EmailVerified bool
	PhoneVerified bool
	DeviceToken   string
	LastLogin     time.Time
	Verification  map[Purpose]VerificationSlot
	Notifications []Notification
	Revision      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Slot returns the verification slot for the given purpose, zero-valued
// when nothing has been issued yet.
func (a *Account) Slot(p Purpose) VerificationSlot {
	if a.Verification == nil {
		return VerificationSlot{}
	}
	return a.Verification[p]
}

// SetSlot replaces the slot for the given purpose.
func (a *Account) SetSlot(p Purpose, s VerificationSlot) {
	if a.Verification == nil {
		a.Verification = make(map[Purpose]VerificationSlot, 3)
	}
	a.Verification[p] = s
}

// Verified reports the verified flag for email or phone. The password
// purpose has no flag and always reports false.
func (a *Account) Verified(p Purpose) bool {
	switch p {
	case PurposeEmail:
		return a.EmailVerified
	case PurposePhone:
		return a.PhoneVerified
	}
	return false
}

// SetVerified flips the verified flag for email or phone.
func (a *Account) SetVerified(p Purpose, v bool) {
	switch p {
	case PurposeEmail:
		a.EmailVerified = v
	case PurposePhone:
		a.PhoneVerified = v
	}
}

// Principal is the authenticated identity the capability gate rules on.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// ExternalIdentity is the result of verifying a third-party ID token.
type ExternalIdentity struct {
	Email string
	Name  string
}

// AuthResult is the outcome of a successful login.
type AuthResult struct {
	Account *Account
	Token   string
}

// SessionClaims are the fields bound into a session token. PasswordDigest
// is a salted digest of the password hash current at issuance; validation
// re-derives it against the stored hash so rotating the password revokes
// every outstanding token.
type SessionClaims struct {
	AccountID      uuid.UUID
	Email          string
	Phone          string
	PasswordDigest string
}
