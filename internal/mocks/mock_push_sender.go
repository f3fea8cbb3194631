package mocks

import (
	"sync"

	"github.com/cleversamer/accountsvc/domain"
)

// PushRecord is one captured push delivery.
type PushRecord struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

// MockPushSender implements domain.PushSender interface for testing
type MockPushSender struct {
	mu   sync.Mutex
	sent []PushRecord

	SendFunc func(tokens []string, title, body string, data map[string]string) error
}

// NewMockPushSender creates a new MockPushSender with default behaviors
func NewMockPushSender() *MockPushSender {
	return &MockPushSender{}
}

// Send records the delivery
func (m *MockPushSender) Send(tokens []string, title, body string, data map[string]string) error {
	if m.SendFunc != nil {
		return m.SendFunc(tokens, title, body, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, PushRecord{Tokens: tokens, Title: title, Body: body, Data: data})
	return nil
}

// Sent returns a copy of the recorded deliveries
func (m *MockPushSender) Sent() []PushRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PushRecord(nil), m.sent...)
}

// Compile-time interface compliance verification
var _ domain.PushSender = (*MockPushSender)(nil)
