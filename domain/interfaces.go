package domain

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AccountRepository defines account data access. Save and Update are
// atomic per account row; Update rejects a writer holding a stale revision
// with ErrStaleAccount, and Apply is the read-modify-write primitive every
// per-account mutation goes through.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// FindByEmailOrPhone resolves an identifier that is either an email
	// address or a composed phone number. Returns ErrAccountNotFound when
	// nothing matches.
	FindByEmailOrPhone(ctx context.Context, identifier string) (*Account, error)
	FindMany(ctx context.Context, ids []uuid.UUID) ([]*Account, error)
	Update(ctx context.Context, account *Account) error
	// Apply loads the account, runs mutate against the fresh revision and
	// persists the result, retrying the whole cycle when a concurrent
	// writer won the race. Errors returned by mutate abort without retry.
	Apply(ctx context.Context, id uuid.UUID, mutate func(*Account) error) (*Account, error)
}

// PasswordService defines the opaque one-way hash and compare capability.
type PasswordService interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) bool
}

// TokenService mints and parses signed session tokens.
type TokenService interface {
	Generate(account *Account) (string, error)
	Parse(token string) (*SessionClaims, error)
	// Digest derives the salted password-hash representation bound into
	// tokens, so callers can compare a parsed token against the current
	// stored hash.
	Digest(passwordHash string) string
}

// IdentityVerifier validates a third-party ID token and extracts the
// identity it asserts.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*ExternalIdentity, error)
}

// MailKind selects an outbound email template.
type MailKind string

const (
	MailRegister      MailKind = "register"
	MailVerifyEmail   MailKind = "verify_email"
	MailChangeEmail   MailKind = "change_email"
	MailResetPassword MailKind = "reset_password"
)

// Mailer sends templated email to a single destination. Delivery failures
// surface as errors; callers decide whether they are fatal.
type Mailer interface {
	Send(kind MailKind, lang, to string, payload map[string]string) error
}

// SMSSender sends a plain text message to a phone number.
type SMSSender interface {
	Send(to, message string) error
}

// PushSender delivers a push notification to the given device tokens.
// Delivery is best-effort fan-out.
type PushSender interface {
	Send(tokens []string, title, body string, data map[string]string) error
}

// FileStore stores and removes binary blobs (avatars). Delete tolerates a
// missing path.
type FileStore interface {
	Store(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// VerificationService issues, validates and consumes the per-purpose
// verification codes on an account.
type VerificationService interface {
	// Issue arms the slot for the purpose with a fresh code and absolute
	// expiry. It mutates the account only; the caller persists.
	Issue(account *Account, purpose Purpose) error
	IsMatching(account *Account, purpose Purpose, candidate string) bool
	IsUnexpired(account *Account, purpose Purpose) bool
	VerifyEmailOrPhone(ctx context.Context, purpose Purpose, accountID uuid.UUID, code string) (*Account, error)
	Resend(ctx context.Context, purpose Purpose, accountID uuid.UUID, lang string) error
	SendResetPasswordCode(ctx context.Context, identifier, channel, lang string) error
	ResetPasswordWithCode(ctx context.Context, identifier, code, newPassword string) (*Account, error)
}

// AccessService is the capability gate. Can returns nil when the principal
// may perform the action, ErrPermissionDenied otherwise; it never errs on
// ambiguous input, it denies.
type AccessService interface {
	Can(principal Principal, action ActionScope, resource Resource, targetID uuid.UUID) error
}

// NotificationService maintains the bounded per-account notification log.
type NotificationService interface {
	// Append mutates the account in place; the caller persists.
	Append(account *Account, title, body string, data map[string]string)
	MarkAllSeen(ctx context.Context, accountID uuid.UUID) ([]Notification, error)
	Clear(ctx context.Context, accountID uuid.UUID) error
	// Send fans a notification out to many accounts and pushes to their
	// device tokens.
	Send(ctx context.Context, accountIDs []uuid.UUID, title, body string, data map[string]string) error
}

// AuthService orchestrates registration, login and password changes.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*Account, error)
	RegisterWithGoogle(ctx context.Context, googleToken string, phone Phone, deviceToken string) (*Account, error)
	Login(ctx context.Context, identifier, password, deviceToken string) (*AuthResult, error)
	ChangePassword(ctx context.Context, accountID uuid.UUID, oldPassword, newPassword string) error
}

// RegisterInput carries the email-path registration fields.
type RegisterInput struct {
	Name        string
	Email       string
	Phone       Phone
	Password    string
	Role        Role
	DeviceToken string
	Lang        string
}

// ProfileChanges carries the optional profile fields. Nil pointers mean
// "not supplied".
type ProfileChanges struct {
	Name   *string
	Email  *string
	Phone  *Phone
	Avatar *AvatarUpload
}

// AvatarUpload is a new avatar blob to store.
type AvatarUpload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// ProfileService applies validated profile changes and the admin account
// operations.
type ProfileService interface {
	// Update returns the updated account and the names of the fields that
	// actually changed.
	Update(ctx context.Context, accountID uuid.UUID, changes ProfileChanges, lang string) (*Account, []string, error)
	UpdateByIdentifier(ctx context.Context, identifier string, changes ProfileChanges, lang string) (*Account, []string, error)
	// FindByIdentifier resolves an account by email or composed phone.
	FindByIdentifier(ctx context.Context, identifier string) (*Account, error)
	ChangeRole(ctx context.Context, identifier string, role Role) (*Account, error)
	VerifyAccount(ctx context.Context, identifier string) (*Account, error)
}
