package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cleversamer/accountsvc/domain"
)

// CodePolicy holds the issuance parameters for one verification purpose.
type CodePolicy struct {
	Length int
	TTL    time.Duration
}

// VerificationConfig configures the verification service. Policies must
// cover all three purposes.
type VerificationConfig struct {
	Policies     map[domain.Purpose]CodePolicy
	ResendWindow time.Duration
}

// VerificationServiceImpl implements domain.VerificationService. Codes
// live on the account document; Redis only backs the resend throttle.
type VerificationServiceImpl struct {
	accounts    domain.AccountRepository
	passwordSvc domain.PasswordService
	mailer      domain.Mailer
	sms         domain.SMSSender
	redisClient *redis.Client
	config      VerificationConfig
}

// NewVerificationService creates the verification service.
func NewVerificationService(
	accounts domain.AccountRepository,
	passwordSvc domain.PasswordService,
	mailer domain.Mailer,
	sms domain.SMSSender,
	redisClient *redis.Client,
	config VerificationConfig,
) domain.VerificationService {
	return &VerificationServiceImpl{
		accounts:    accounts,
		passwordSvc: passwordSvc,
		mailer:      mailer,
		sms:         sms,
		redisClient: redisClient,
		config:      config,
	}
}

// Issue arms the slot for purpose with a fresh code and absolute expiry,
// replacing whatever was there. Other purposes' slots are untouched. The
// caller persists the account.
func (s *VerificationServiceImpl) Issue(account *domain.Account, purpose domain.Purpose) error {
	policy, ok := s.config.Policies[purpose]
	if !ok {
		return fmt.Errorf("no code policy for purpose %q", purpose)
	}

	code, err := generateCode(policy.Length)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	account.SetSlot(purpose, domain.VerificationSlot{
		Code:      code,
		ExpiresAt: time.Now().Add(policy.TTL),
	})
	return nil
}

// IsMatching reports whether candidate equals the stored code for purpose.
// An unarmed slot never matches; that is a defined contract, not a
// swallowed error.
func (s *VerificationServiceImpl) IsMatching(account *domain.Account, purpose domain.Purpose, candidate string) bool {
	slot := account.Slot(purpose)
	if !slot.Armed() {
		return false
	}
	return slot.Code == strings.TrimSpace(candidate)
}

// IsUnexpired reports whether the slot's code is still valid. Validity is
// inclusive of the expiry instant itself: the code holds while
// now <= expiresAt.
func (s *VerificationServiceImpl) IsUnexpired(account *domain.Account, purpose domain.Purpose) bool {
	slot := account.Slot(purpose)
	if !slot.Armed() || slot.ExpiresAt.IsZero() {
		return false
	}
	return !time.Now().After(slot.ExpiresAt)
}

// VerifyEmailOrPhone consumes the code for the email or phone purpose and
// flips the matching verified flag. Check order is part of the contract:
// already-verified, then incorrect, then expired — an expired-but-wrong
// code reports incorrect.
func (s *VerificationServiceImpl) VerifyEmailOrPhone(ctx context.Context, purpose domain.Purpose, accountID uuid.UUID, code string) (*domain.Account, error) {
	if purpose != domain.PurposePhone {
		purpose = domain.PurposeEmail
	}

	return s.accounts.Apply(ctx, accountID, func(account *domain.Account) error {
		if account.Verified(purpose) {
			if purpose == domain.PurposePhone {
				return domain.ErrPhoneAlreadyVerified
			}
			return domain.ErrEmailAlreadyVerified
		}
		if !s.IsMatching(account, purpose, code) {
			return domain.ErrIncorrectCode
		}
		if !s.IsUnexpired(account, purpose) {
			return domain.ErrExpiredCode
		}
		account.SetVerified(purpose, true)
		return nil
	})
}

// Resend re-arms the slot for the email or phone purpose and dispatches
// the fresh code, throttled per account and purpose.
func (s *VerificationServiceImpl) Resend(ctx context.Context, purpose domain.Purpose, accountID uuid.UUID, lang string) error {
	if purpose != domain.PurposePhone {
		purpose = domain.PurposeEmail
	}

	if err := s.throttle(ctx, accountID, purpose); err != nil {
		return err
	}

	account, err := s.accounts.Apply(ctx, accountID, func(account *domain.Account) error {
		if account.Verified(purpose) {
			if purpose == domain.PurposePhone {
				return domain.ErrPhoneAlreadyVerified
			}
			return domain.ErrEmailAlreadyVerified
		}
		return s.Issue(account, purpose)
	})
	if err != nil {
		return err
	}

	return s.dispatch(purpose, purpose, domain.MailVerifyEmail, lang, account)
}

// SendResetPasswordCode arms the password slot for the account resolved by
// identifier and dispatches the code over the requested channel ("email"
// or "phone").
func (s *VerificationServiceImpl) SendResetPasswordCode(ctx context.Context, identifier, channel, lang string) error {
	account, err := s.accounts.FindByEmailOrPhone(ctx, identifier)
	if err != nil {
		return domain.ErrEmailOrPhoneNotUsed
	}

	if err := s.throttle(ctx, account.ID, domain.PurposePassword); err != nil {
		return err
	}

	account, err = s.accounts.Apply(ctx, account.ID, func(account *domain.Account) error {
		return s.Issue(account, domain.PurposePassword)
	})
	if err != nil {
		return err
	}

	via := domain.PurposeEmail
	if channel == "phone" {
		via = domain.PurposePhone
	}
	return s.dispatch(via, domain.PurposePassword, domain.MailResetPassword, lang, account)
}

// ResetPasswordWithCode consumes the password-reset code and replaces the
// password hash. Incorrectness is reported before expiry.
func (s *VerificationServiceImpl) ResetPasswordWithCode(ctx context.Context, identifier, code, newPassword string) (*domain.Account, error) {
	account, err := s.accounts.FindByEmailOrPhone(ctx, identifier)
	if err != nil {
		return nil, domain.ErrEmailOrPhoneNotUsed
	}

	return s.accounts.Apply(ctx, account.ID, func(account *domain.Account) error {
		if !s.IsMatching(account, domain.PurposePassword, code) {
			return domain.ErrIncorrectCode
		}
		if !s.IsUnexpired(account, domain.PurposePassword) {
			return domain.ErrExpiredCode
		}
		hash, err := s.passwordSvc.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = hash
		return nil
	})
}

// throttle enforces the per-account resend window via Redis. A nil client
// disables throttling (unit tests).
func (s *VerificationServiceImpl) throttle(ctx context.Context, accountID uuid.UUID, purpose domain.Purpose) error {
	if s.redisClient == nil || s.config.ResendWindow <= 0 {
		return nil
	}
	key := fmt.Sprintf("vercode:res:%s:%s", accountID, purpose)
	ok, err := s.redisClient.SetNX(ctx, key, 1, s.config.ResendWindow).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if !ok {
		return domain.ErrCodeResendThrottled
	}
	return nil
}

// dispatch sends the code armed in slotPurpose over the given channel.
func (s *VerificationServiceImpl) dispatch(channel, slotPurpose domain.Purpose, kind domain.MailKind, lang string, account *domain.Account) error {
	slot := account.Slot(slotPurpose)

	if channel == domain.PurposePhone {
		message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.",
			slot.Code, int(s.config.Policies[slotPurpose].TTL.Minutes()))
		return s.sms.Send(account.Phone.Full(), message)
	}

	return s.mailer.Send(kind, lang, account.Email, map[string]string{
		"name": account.Name,
		"code": slot.Code,
	})
}

// generateCode produces a uniformly distributed decimal code of exactly
// length digits. The leading digit is never zero so the code always
// occupies the full width.
func generateCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}

	digits := make([]byte, length)

	first, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return "", fmt.Errorf("failed to generate random digit: %w", err)
	}
	digits[0] = byte('1' + first.Int64())

	for i := 1; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
