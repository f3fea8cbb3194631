package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleversamer/accountsvc/domain"
)

// applyRetries bounds the read-modify-write retry cycle when two writers
// race on the same account row.
const applyRetries = 3

// AccountRepositoryImpl implements domain.AccountRepository using GORM.
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount is the database model for Account. The verification slots and
// the notification list travel as JSON documents inside the row, so a row
// update is atomic over the whole aggregate.
type DBAccount struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"size:64"`
	Email         string    `gorm:"uniqueIndex;size:256"`
	PhoneFull     string    `gorm:"uniqueIndex;size:32"`
	PhoneICC      string    `gorm:"size:8"`
	PhoneNSN      string    `gorm:"size:16"`
	PasswordHash  string    `gorm:"column:password"`
	Role          string    `gorm:"index;size:16"`
	AvatarURL     string    `gorm:"size:512"`
	EmailVerified bool
	PhoneVerified bool
	DeviceToken   string `gorm:"size:1024"`
	LastLogin     time.Time
	Verification  []byte `gorm:"type:jsonb"`
	Notifications []byte `gorm:"type:jsonb"`
	Revision      int64  `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM.
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository. Unique-index conflicts on
// email or phone surface as domain.ErrDuplicateKey.
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	dbAccount, err := domainToDB(account)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, account.Email)
		}
		return err
	}
	return nil
}

// FindByID implements domain.AccountRepository.
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbAccount)
}

// FindByEmail implements domain.AccountRepository.
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbAccount)
}

// FindByEmailOrPhone implements domain.AccountRepository.
func (r *AccountRepositoryImpl) FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone_full = ?", strings.ToLower(identifier), identifier).
		First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbAccount)
}

// FindMany implements domain.AccountRepository. Unknown ids are skipped,
// not errors.
func (r *AccountRepositoryImpl) FindMany(ctx context.Context, ids []uuid.UUID) ([]*domain.Account, error) {
	var dbAccounts []DBAccount
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dbAccounts).Error; err != nil {
		return nil, err
	}
	accounts := make([]*domain.Account, 0, len(dbAccounts))
	for i := range dbAccounts {
		account, err := dbToDomain(&dbAccounts[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Update implements domain.AccountRepository. The write is guarded by the
// revision the caller read: a concurrent writer that got there first
// leaves zero rows affected and the caller sees ErrStaleAccount instead
// of silently losing its update.
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	dbAccount, err := domainToDB(account)
	if err != nil {
		return err
	}
	prev := account.Revision
	dbAccount.Revision = prev + 1

	res := r.db.WithContext(ctx).
		Model(&DBAccount{}).
		Where("id = ? AND revision = ?", dbAccount.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(dbAccount)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, account.Email)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleAccount
	}

	account.Revision = prev + 1
	return nil
}

// Apply implements domain.AccountRepository: load, mutate, store as one
// guarded cycle, retried a bounded number of times when a concurrent
// writer wins the revision race. Errors from mutate abort immediately.
func (r *AccountRepositoryImpl) Apply(ctx context.Context, id uuid.UUID, mutate func(*domain.Account) error) (*domain.Account, error) {
	for attempt := 0; attempt < applyRetries; attempt++ {
		account, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := mutate(account); err != nil {
			return nil, err
		}
		err = r.Update(ctx, account)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, domain.ErrStaleAccount) {
			return nil, err
		}
	}
	return nil, domain.ErrStaleAccount
}

// domainToDB converts a domain account to its database model.
func domainToDB(account *domain.Account) (*DBAccount, error) {
	verification, err := json.Marshal(account.Verification)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification slots: %w", err)
	}
	notifications, err := json.Marshal(account.Notifications)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notifications: %w", err)
	}

	return &DBAccount{
		ID:            account.ID,
		Name:          account.Name,
		Email:         account.Email,
		PhoneFull:     account.Phone.Full(),
		PhoneICC:      account.Phone.ICC,
		PhoneNSN:      account.Phone.NSN,
		PasswordHash:  account.PasswordHash,
		Role:          string(account.Role),
		AvatarURL:     account.AvatarURL,
		EmailVerified: account.EmailVerified,
		PhoneVerified: account.PhoneVerified,
		DeviceToken:   account.DeviceToken,
		LastLogin:     account.LastLogin,
		Verification:  verification,
		Notifications: notifications,
		Revision:      account.Revision,
	}, nil
}

// dbToDomain converts a database model back to a domain account.
func dbToDomain(dbAccount *DBAccount) (*domain.Account, error) {
	var verification map[domain.Purpose]domain.VerificationSlot
	if len(dbAccount.Verification) > 0 {
		if err := json.Unmarshal(dbAccount.Verification, &verification); err != nil {
			return nil, fmt.Errorf("failed to unmarshal verification slots: %w", err)
		}
	}
	var notifications []domain.Notification
	if len(dbAccount.Notifications) > 0 {
		if err := json.Unmarshal(dbAccount.Notifications, &notifications); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
		}
	}

	return &domain.Account{
		ID:            dbAccount.ID,
		Name:          dbAccount.Name,
		Email:         dbAccount.Email,
		Phone:         domain.Phone{ICC: dbAccount.PhoneICC, NSN: dbAccount.PhoneNSN},
		PasswordHash:  dbAccount.PasswordHash,
		Role:          domain.Role(dbAccount.Role),
		AvatarURL:     dbAccount.AvatarURL,
		EmailVerified: dbAccount.EmailVerified,
		PhoneVerified: dbAccount.PhoneVerified,
		DeviceToken:   dbAccount.DeviceToken,
		LastLogin:     dbAccount.LastLogin,
		Verification:  verification,
		Notifications: notifications,
		Revision:      dbAccount.Revision,
		CreatedAt:     dbAccount.CreatedAt,
		UpdatedAt:     dbAccount.UpdatedAt,
	}, nil
}
