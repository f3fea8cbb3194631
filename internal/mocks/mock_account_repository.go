package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

// MockAccountRepository implements domain.AccountRepository for testing.
// By default it is a real in-memory store with the same revision semantics
// as the persistent one, so Apply-based services work against it without
// any stubbing. Individual Func fields override single methods.
type MockAccountRepository struct {
	mu    sync.Mutex
	store map[uuid.UUID]*domain.Account

	CreateFunc             func(ctx context.Context, account *domain.Account) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.Account, error)
	FindByEmailOrPhoneFunc func(ctx context.Context, identifier string) (*domain.Account, error)
	FindManyFunc           func(ctx context.Context, ids []uuid.UUID) ([]*domain.Account, error)
	UpdateFunc             func(ctx context.Context, account *domain.Account) error
	ApplyFunc              func(ctx context.Context, id uuid.UUID, mutate func(*domain.Account) error) (*domain.Account, error)
}

// NewMockAccountRepository creates an empty in-memory repository.
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{store: make(map[uuid.UUID]*domain.Account)}
}

// Seed places an account into the in-memory store, bypassing uniqueness
// checks.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[account.ID] = clone(account)
}

func clone(a *domain.Account) *domain.Account {
	c := *a
	if a.Verification != nil {
		c.Verification = make(map[domain.Purpose]domain.VerificationSlot, len(a.Verification))
		for k, v := range a.Verification {
			c.Verification[k] = v
		}
	}
	if a.Notifications != nil {
		c.Notifications = append([]domain.Notification(nil), a.Notifications...)
	}
	return &c
}

// Create stores a new account, signalling ErrDuplicateKey on an email or
// phone conflict like the persistent store's unique indexes do.
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if strings.EqualFold(existing.Email, account.Email) ||
			(account.Phone.Full() != "" && existing.Phone.Full() == account.Phone.Full()) {
			return domain.ErrDuplicateKey
		}
	}
	m.store[account.ID] = clone(account)
	return nil
}

// FindByID returns a copy of the stored account.
func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.store[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return clone(account), nil
}

// FindByEmail resolves by case-insensitive email.
func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.store {
		if strings.EqualFold(account.Email, email) {
			return clone(account), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// FindByEmailOrPhone resolves by email or by full phone number.
func (m *MockAccountRepository) FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.Account, error) {
	if m.FindByEmailOrPhoneFunc != nil {
		return m.FindByEmailOrPhoneFunc(ctx, identifier)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.store {
		if strings.EqualFold(account.Email, identifier) || account.Phone.Full() == identifier {
			return clone(account), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// FindMany returns the accounts that exist, skipping unknown ids.
func (m *MockAccountRepository) FindMany(ctx context.Context, ids []uuid.UUID) ([]*domain.Account, error) {
	if m.FindManyFunc != nil {
		return m.FindManyFunc(ctx, ids)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		if account, ok := m.store[id]; ok {
			out = append(out, clone(account))
		}
	}
	return out, nil
}

// Update persists the account when its revision is still current,
// rejecting stale writers with ErrStaleAccount.
func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateLocked(account)
}

func (m *MockAccountRepository) updateLocked(account *domain.Account) error {
	current, ok := m.store[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if current.Revision != account.Revision {
		return domain.ErrStaleAccount
	}
	account.Revision++
	m.store[account.ID] = clone(account)
	return nil
}

// Apply runs the read-modify-write cycle. Like the persistent
// implementation it runs mutate without holding the store lock, so the
// closure may call back into the repository; the revision check in
// updateLocked keeps the write consistent.
func (m *MockAccountRepository) Apply(ctx context.Context, id uuid.UUID, mutate func(*domain.Account) error) (*domain.Account, error) {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, id, mutate)
	}
	m.mu.Lock()
	current, ok := m.store[id]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrAccountNotFound
	}
	account := clone(current)
	m.mu.Unlock()
	if err := mutate(account); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.updateLocked(account); err != nil {
		return nil, err
	}
	return account, nil
}

// Compile-time interface compliance verification
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
