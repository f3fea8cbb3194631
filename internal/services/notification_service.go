package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

// NotificationServiceImpl implements domain.NotificationService. The log
// is bounded: the newest entry is always at the head and appending beyond
// capacity drops the oldest entries first.
type NotificationServiceImpl struct {
	accounts domain.AccountRepository
	push     domain.PushSender
	capacity int
}

// NewNotificationService creates the notification service. capacity must
// be positive.
func NewNotificationService(accounts domain.AccountRepository, push domain.PushSender, capacity int) domain.NotificationService {
	return &NotificationServiceImpl{
		accounts: accounts,
		push:     push,
		capacity: capacity,
	}
}

// Append prepends an unseen notification, evicting from the tail so the
// list never exceeds capacity. The caller persists the account.
func (s *NotificationServiceImpl) Append(account *domain.Account, title, body string, data map[string]string) {
	entry := domain.Notification{
		Title:     title,
		Body:      body,
		Data:      data,
		Seen:      false,
		CreatedAt: time.Now(),
	}

	list := account.Notifications
	if len(list) >= s.capacity {
		list = list[:s.capacity-1]
	}
	account.Notifications = append([]domain.Notification{entry}, list...)
}

// MarkAllSeen flips every entry to seen. When nothing is unseen — the
// empty list included — it reports ErrNotificationsAlreadySeen and leaves
// the account untouched. Seen flags only ever go false to true.
func (s *NotificationServiceImpl) MarkAllSeen(ctx context.Context, accountID uuid.UUID) ([]domain.Notification, error) {
	account, err := s.accounts.Apply(ctx, accountID, func(account *domain.Account) error {
		unseen := false
		for _, n := range account.Notifications {
			if !n.Seen {
				unseen = true
				break
			}
		}
		if !unseen {
			return domain.ErrNotificationsAlreadySeen
		}
		for i := range account.Notifications {
			account.Notifications[i].Seen = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account.Notifications, nil
}

// Clear discards the whole list. Clearing an already-empty list reports
// ErrNoNotifications.
func (s *NotificationServiceImpl) Clear(ctx context.Context, accountID uuid.UUID) error {
	_, err := s.accounts.Apply(ctx, accountID, func(account *domain.Account) error {
		if len(account.Notifications) == 0 {
			return domain.ErrNoNotifications
		}
		account.Notifications = nil
		return nil
	})
	return err
}

// Send appends the notification to every listed account and pushes to the
// device tokens collected along the way.
func (s *NotificationServiceImpl) Send(ctx context.Context, accountIDs []uuid.UUID, title, body string, data map[string]string) error {
	accounts, err := s.accounts.FindMany(ctx, accountIDs)
	if err != nil {
		return err
	}

	tokens := make([]string, 0, len(accounts))
	for _, account := range accounts {
		updated, err := s.accounts.Apply(ctx, account.ID, func(account *domain.Account) error {
			s.Append(account, title, body, data)
			return nil
		})
		if err != nil {
			return err
		}
		if updated.DeviceToken != "" {
			tokens = append(tokens, updated.DeviceToken)
		}
	}

	if len(tokens) == 0 {
		return nil
	}
	return s.push.Send(tokens, title, body, data)
}
