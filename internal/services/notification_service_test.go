package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
	"github.com/cleversamer/accountsvc/internal/mocks"
)

const testCapacity = 10

func createNotificationServiceForTest(t *testing.T) (domain.NotificationService, *mocks.MockAccountRepository, *mocks.MockPushSender) {
	t.Helper()

	accounts := mocks.NewMockAccountRepository()
	push := mocks.NewMockPushSender()
	return NewNotificationService(accounts, push, testCapacity), accounts, push
}

func TestNotificationServiceImpl_Append_PrependsNewest(t *testing.T) {
	svc, _, _ := createNotificationServiceForTest(t)
	account := &domain.Account{ID: uuid.New()}

	svc.Append(account, "first", "b", nil)
	svc.Append(account, "second", "b", nil)

	if len(account.Notifications) != 2 {
		t.Fatalf("len = %d, want 2", len(account.Notifications))
	}
	if account.Notifications[0].Title != "second" {
		t.Errorf("head = %q, want the newest entry", account.Notifications[0].Title)
	}
	if account.Notifications[0].Seen {
		t.Error("new entry marked seen")
	}
}

func TestNotificationServiceImpl_Append_EvictsOldestAtCapacity(t *testing.T) {
	svc, _, _ := createNotificationServiceForTest(t)
	account := &domain.Account{ID: uuid.New()}

	for i := 0; i < testCapacity+1; i++ {
		svc.Append(account, fmt.Sprintf("n%d", i), "b", nil)
	}

	if len(account.Notifications) != testCapacity {
		t.Fatalf("len = %d, want %d", len(account.Notifications), testCapacity)
	}
	if got := account.Notifications[0].Title; got != fmt.Sprintf("n%d", testCapacity) {
		t.Errorf("head = %q, want the newest entry", got)
	}
	// n0 fell off the tail; n1 survived as the oldest.
	if got := account.Notifications[testCapacity-1].Title; got != "n1" {
		t.Errorf("tail = %q, want n1", got)
	}
}

func TestNotificationServiceImpl_MarkAllSeen(t *testing.T) {
	svc, accounts, _ := createNotificationServiceForTest(t)

	account := &domain.Account{ID: uuid.New()}
	svc.Append(account, "a", "b", nil)
	svc.Append(account, "c", "d", nil)
	accounts.Seed(account)

	list, err := svc.MarkAllSeen(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("MarkAllSeen() error = %v", err)
	}
	for i, n := range list {
		if !n.Seen {
			t.Errorf("entry %d not seen", i)
		}
	}

	// Second call finds nothing unseen.
	if _, err := svc.MarkAllSeen(context.Background(), account.ID); !errors.Is(err, domain.ErrNotificationsAlreadySeen) {
		t.Errorf("repeat MarkAllSeen() error = %v, want ErrNotificationsAlreadySeen", err)
	}
}

func TestNotificationServiceImpl_MarkAllSeen_EmptyList(t *testing.T) {
	svc, accounts, _ := createNotificationServiceForTest(t)
	account := &domain.Account{ID: uuid.New()}
	accounts.Seed(account)

	if _, err := svc.MarkAllSeen(context.Background(), account.ID); !errors.Is(err, domain.ErrNotificationsAlreadySeen) {
		t.Errorf("MarkAllSeen() on empty list error = %v, want ErrNotificationsAlreadySeen", err)
	}
}

func TestNotificationServiceImpl_Clear(t *testing.T) {
	svc, accounts, _ := createNotificationServiceForTest(t)

	account := &domain.Account{ID: uuid.New()}
	svc.Append(account, "a", "b", nil)
	accounts.Seed(account)

	if err := svc.Clear(context.Background(), account.ID); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	stored, _ := accounts.FindByID(context.Background(), account.ID)
	if len(stored.Notifications) != 0 {
		t.Errorf("notifications not cleared: %d left", len(stored.Notifications))
	}

	if err := svc.Clear(context.Background(), account.ID); !errors.Is(err, domain.ErrNoNotifications) {
		t.Errorf("Clear() on empty list error = %v, want ErrNoNotifications", err)
	}
}

func TestNotificationServiceImpl_Send(t *testing.T) {
	svc, accounts, push := createNotificationServiceForTest(t)

	withToken := &domain.Account{ID: uuid.New(), DeviceToken: "dev-1"}
	withoutToken := &domain.Account{ID: uuid.New()}
	accounts.Seed(withToken)
	accounts.Seed(withoutToken)

	// Unknown ids are skipped, not an error.
	ids := []uuid.UUID{withToken.ID, withoutToken.ID, uuid.New()}
	if err := svc.Send(context.Background(), ids, "title", "body", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	for _, id := range []uuid.UUID{withToken.ID, withoutToken.ID} {
		stored, _ := accounts.FindByID(context.Background(), id)
		if len(stored.Notifications) != 1 {
			t.Errorf("account %s notifications = %d, want 1", id, len(stored.Notifications))
		}
	}

	sent := push.Sent()
	if len(sent) != 1 {
		t.Fatalf("push sends = %d, want 1", len(sent))
	}
	if len(sent[0].Tokens) != 1 || sent[0].Tokens[0] != "dev-1" {
		t.Errorf("push tokens = %v, want only the registered device", sent[0].Tokens)
	}
}

func TestNotificationServiceImpl_ConcurrentAppends(t *testing.T) {
	svc, accounts, _ := createNotificationServiceForTest(t)
	account := &domain.Account{ID: uuid.New()}
	accounts.Seed(account)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := svc.Send(context.Background(), []uuid.UUID{account.ID}, fmt.Sprintf("n%d", i), "b", nil)
			if err != nil {
				t.Errorf("Send() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	stored, _ := accounts.FindByID(context.Background(), account.ID)
	if len(stored.Notifications) != writers {
		t.Errorf("notifications = %d, want %d (no lost updates)", len(stored.Notifications), writers)
	}
}
