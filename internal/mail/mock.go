package mail

import (
	"context"
	"sync"

	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/sirupsen/logrus"
)

// MockMailer logs messages instead of sending them. Used when no SMTP host is
// configured and in tests.
type MockMailer struct {
	mu   sync.Mutex
	sent []*Message
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Name() string { return "mock" }

func (m *MockMailer) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	attachments := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		attachments = append(attachments, a.Filename)
	}
	config.GetLoggerEntry("mail").WithFields(logrus.Fields{
		"to":          msg.To,
		"subject":     msg.Subject,
		"attachments": attachments,
	}).Info("[MockMail] message not sent, no SMTP host configured")

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return nil
}

func (m *MockMailer) Verify(ctx context.Context) error {
	return nil
}

// Sent returns the messages handed to the mock so far
func (m *MockMailer) Sent() []*Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Message(nil), m.sent...)
}
