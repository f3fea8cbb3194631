package mocks

import (
	"sync"

	"github.com/cleversamer/accountsvc/domain"
)

// SMSRecord is one captured outbound text message.
type SMSRecord struct {
	To      string
	Message string
}

// MockSMSSender implements domain.SMSSender interface for testing
type MockSMSSender struct {
	mu   sync.Mutex
	sent []SMSRecord

	SendFunc func(to, message string) error
}

// NewMockSMSSender creates a new MockSMSSender with default behaviors
func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

// Send records the message
func (m *MockSMSSender) Send(to, message string) error {
	if m.SendFunc != nil {
		return m.SendFunc(to, message)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SMSRecord{To: to, Message: message})
	return nil
}

// Sent returns a copy of the recorded messages
func (m *MockSMSSender) Sent() []SMSRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SMSRecord(nil), m.sent...)
}

// Compile-time interface compliance verification
var _ domain.SMSSender = (*MockSMSSender)(nil)
