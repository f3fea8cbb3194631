package mocks

import (
	"sync"

	"github.com/cleversamer/accountsvc/domain"
)

// MailRecord is one captured outbound email.
type MailRecord struct {
	Kind    domain.MailKind
	Lang    string
	To      string
	Payload map[string]string
}

// MockMailer implements domain.Mailer interface for testing. Sent emails
// are recorded for assertions.
type MockMailer struct {
	mu   sync.Mutex
	sent []MailRecord

	SendFunc func(kind domain.MailKind, lang, to string, payload map[string]string) error
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send records the email
func (m *MockMailer) Send(kind domain.MailKind, lang, to string, payload map[string]string) error {
	if m.SendFunc != nil {
		return m.SendFunc(kind, lang, to, payload)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, MailRecord{Kind: kind, Lang: lang, To: to, Payload: payload})
	return nil
}

// Sent returns a copy of the recorded emails
func (m *MockMailer) Sent() []MailRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MailRecord(nil), m.sent...)
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
