package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

// ProfileServiceImpl implements domain.ProfileService.
type ProfileServiceImpl struct {
	accounts        domain.AccountRepository
	verificationSvc domain.VerificationService
	files           domain.FileStore
	mailer          domain.Mailer
}

// NewProfileService creates the profile service.
func NewProfileService(
	accounts domain.AccountRepository,
	verificationSvc domain.VerificationService,
	files domain.FileStore,
	mailer domain.Mailer,
) domain.ProfileService {
	return &ProfileServiceImpl{
		accounts:        accounts,
		verificationSvc: verificationSvc,
		files:           files,
		mailer:          mailer,
	}
}

// Update applies the supplied profile changes field by field and persists
// them as one atomic save. Identity fields re-arm their verification slot
// and drop the verified flag. When nothing differs from current state the
// save is skipped and ErrNoChangesApplied reported.
func (s *ProfileServiceImpl) Update(ctx context.Context, accountID uuid.UUID, changes domain.ProfileChanges, lang string) (*domain.Account, []string, error) {
	// The avatar blob is stored up front; its reference is applied
	// unconditionally below once the upload succeeded.
	var avatarPath string
	if changes.Avatar != nil {
		path, err := s.files.Store(ctx, changes.Avatar.Name, changes.Avatar.ContentType, changes.Avatar.Content)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		avatarPath = path
	}

	var changed []string
	var oldAvatar, newEmail string

	account, err := s.accounts.Apply(ctx, accountID, func(account *domain.Account) error {
		changed = changed[:0]
		oldAvatar, newEmail = "", ""

		if changes.Name != nil {
			name := strings.TrimSpace(*changes.Name)
			if name != "" && name != account.Name {
				account.Name = name
				changed = append(changed, "name")
			}
		}

		if changes.Avatar != nil {
			oldAvatar = account.AvatarURL
			account.AvatarURL = avatarPath
			changed = append(changed, "avatarURL")
		}

		if changes.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*changes.Email))
			if email != "" && email != account.Email {
				if other, err := s.accounts.FindByEmailOrPhone(ctx, email); err == nil && other != nil && other.ID != account.ID {
					return domain.ErrEmailUsed
				}
				account.Email = email
				account.EmailVerified = false
				if err := s.verificationSvc.Issue(account, domain.PurposeEmail); err != nil {
					return err
				}
				newEmail = email
				changed = append(changed, "email")
			}
		}

		if changes.Phone != nil {
			phone := *changes.Phone
			if !phone.Equal(account.Phone) {
				if err := validatePhone(phone); err != nil {
					return err
				}
				if other, err := s.accounts.FindByEmailOrPhone(ctx, phone.Full()); err == nil && other != nil && other.ID != account.ID {
					return domain.ErrPhoneUsed
				}
				account.Phone = phone
				account.PhoneVerified = false
				if err := s.verificationSvc.Issue(account, domain.PurposePhone); err != nil {
					return err
				}
				changed = append(changed, "phone")
			}
		}

		if len(changed) == 0 {
			return domain.ErrNoChangesApplied
		}
		return nil
	})
	if err != nil {
		// The fresh blob never made it onto an account; best-effort
		// cleanup so the failed save does not orphan it.
		if avatarPath != "" {
			_ = s.files.Delete(ctx, avatarPath)
		}
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, nil, domain.ErrEmailOrPhoneUsed
		}
		return nil, nil, err
	}

	// Old avatar removal and the change-email notice are best effort;
	// their failure does not roll back the applied change.
	if oldAvatar != "" && oldAvatar != avatarPath {
		_ = s.files.Delete(ctx, oldAvatar)
	}
	if newEmail != "" {
		_ = s.mailer.Send(domain.MailChangeEmail, lang, newEmail, map[string]string{
			"name": account.Name,
			"code": account.Slot(domain.PurposeEmail).Code,
		})
	}

	return account, changed, nil
}

// UpdateByIdentifier is the admin variant of Update, resolving the target
// by email or composed phone.
func (s *ProfileServiceImpl) UpdateByIdentifier(ctx context.Context, identifier string, changes domain.ProfileChanges, lang string) (*domain.Account, []string, error) {
	account, err := s.accounts.FindByEmailOrPhone(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}
	return s.Update(ctx, account.ID, changes, lang)
}

// FindByIdentifier resolves an account by email or composed phone.
func (s *ProfileServiceImpl) FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	return s.accounts.FindByEmailOrPhone(ctx, identifier)
}

// ChangeRole sets the target account's role.
func (s *ProfileServiceImpl) ChangeRole(ctx context.Context, identifier string, role domain.Role) (*domain.Account, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	account, err := s.accounts.FindByEmailOrPhone(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.accounts.Apply(ctx, account.ID, func(account *domain.Account) error {
		account.Role = role
		return nil
	})
}

// VerifyAccount marks both the email and phone as verified, failing when
// there is nothing left to verify.
func (s *ProfileServiceImpl) VerifyAccount(ctx context.Context, identifier string) (*domain.Account, error) {
	account, err := s.accounts.FindByEmailOrPhone(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.accounts.Apply(ctx, account.ID, func(account *domain.Account) error {
		if account.EmailVerified && account.PhoneVerified {
			return domain.ErrAlreadyVerified
		}
		account.EmailVerified = true
		account.PhoneVerified = true
		return nil
	})
}

// validatePhone re-checks the phone structure at the domain boundary even
// though the transport layer validates it first.
func validatePhone(p domain.Phone) error {
	if p.ICC == "" || p.NSN == "" {
		return domain.ErrInvalidPhone
	}
	if !strings.HasPrefix(p.ICC, "+") {
		return domain.ErrInvalidPhone
	}
	for _, r := range p.NSN {
		if !unicode.IsDigit(r) {
			return domain.ErrInvalidPhone
		}
	}
	return nil
}
