package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

// AuthServiceImpl implements domain.AuthService.
type AuthServiceImpl struct {
	accounts        domain.AccountRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	verificationSvc domain.VerificationService
	identitySvc     domain.IdentityVerifier
	mailer          domain.Mailer
	sms             domain.SMSSender
}

// NewAuthService creates the auth service.
func NewAuthService(
	accounts domain.AccountRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	verificationSvc domain.VerificationService,
	identitySvc domain.IdentityVerifier,
	mailer domain.Mailer,
	sms domain.SMSSender,
) domain.AuthService {
	return &AuthServiceImpl{
		accounts:        accounts,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		verificationSvc: verificationSvc,
		identitySvc:     identitySvc,
		mailer:          mailer,
		sms:             sms,
	}
}

// Register creates an account over the email path: password hashed, both
// verification slots armed, codes dispatched. A duplicate email or phone
// surfaces as ErrEmailOrPhoneUsed via the store's duplicate-key signal.
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.Account, error) {
	role := input.Role
	if role == "" {
		role = domain.DefaultRole()
	}
	// Only the default role is open for self-registration.
	if role != domain.DefaultRole() {
		return nil, domain.ErrInvalidRole
	}

	// The transport layer validates these first; re-check at the domain
	// boundary so no path creates an account with an empty identity or an
	// empty-password hash.
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if input.Password == "" {
		return nil, domain.ErrInvalidPassword
	}
	if err := validatePhone(input.Phone); err != nil {
		return nil, err
	}

	hash, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
		DeviceToken:  input.DeviceToken,
		LastLogin:    time.Now(),
	}

	if err := s.verificationSvc.Issue(account, domain.PurposeEmail); err != nil {
		return nil, err
	}
	if err := s.verificationSvc.Issue(account, domain.PurposePhone); err != nil {
		return nil, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.ErrEmailOrPhoneUsed
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := s.mailer.Send(domain.MailRegister, input.Lang, account.Email, map[string]string{
		"name": account.Name,
		"code": account.Slot(domain.PurposeEmail).Code,
	}); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	phoneCode := account.Slot(domain.PurposePhone).Code
	if err := s.sms.Send(account.Phone.Full(), fmt.Sprintf("Your verification code is: %s", phoneCode)); err != nil {
		return nil, fmt.Errorf("failed to send verification SMS: %w", err)
	}

	return account, nil
}

// RegisterWithGoogle verifies the external ID token and creates an account
// with a pre-verified email and no password. When the asserted email is
// already registered the existing account is returned unchanged, so the
// operation doubles as login.
func (s *AuthServiceImpl) RegisterWithGoogle(ctx context.Context, googleToken string, phone domain.Phone, deviceToken string) (*domain.Account, error) {
	identity, err := s.identitySvc.Verify(ctx, googleToken)
	if err != nil {
		return nil, err
	}

	existing, err := s.accounts.FindByEmail(ctx, strings.ToLower(identity.Email))
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	account := &domain.Account{
		ID:            uuid.New(),
		Name:          identity.Name,
		Email:         strings.ToLower(identity.Email),
		Phone:         phone,
		Role:          domain.DefaultRole(),
		EmailVerified: true,
		DeviceToken:   deviceToken,
		LastLogin:     time.Now(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.ErrEmailOrPhoneUsed
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Login resolves the account by email or composed phone and checks the
// password. A missing account and a wrong password are indistinguishable
// to the caller. On success the last-login instant and device token are
// updated and a fresh session token minted.
func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password, deviceToken string) (*domain.AuthResult, error) {
	account, err := s.accounts.FindByEmailOrPhone(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrIncorrectCredentials
		}
		return nil, err
	}

	if account.PasswordHash == "" || !s.passwordSvc.Compare(account.PasswordHash, password) {
		return nil, domain.ErrIncorrectCredentials
	}

	account, err = s.accounts.Apply(ctx, account.ID, func(account *domain.Account) error {
		account.LastLogin = time.Now()
		if deviceToken != "" {
			account.DeviceToken = deviceToken
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokenSvc.Generate(account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &domain.AuthResult{Account: account, Token: token}, nil
}

// ChangePassword replaces the password hash after checking the old
// password and rejecting a no-op change. Outstanding session tokens stop
// validating once the hash rotates.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, accountID uuid.UUID, oldPassword, newPassword string) error {
	_, err := s.accounts.Apply(ctx, accountID, func(account *domain.Account) error {
		if !s.passwordSvc.Compare(account.PasswordHash, oldPassword) {
			return domain.ErrIncorrectOldPassword
		}
		if s.passwordSvc.Compare(account.PasswordHash, newPassword) {
			return domain.ErrOldPasswordMatchNew
		}
		hash, err := s.passwordSvc.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = hash
		return nil
	})
	return err
}
