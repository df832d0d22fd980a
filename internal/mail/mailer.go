package mail

import (
	"context"
	"strings"
)

// Mailer hands a finished message to a transport
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
	Verify(ctx context.Context) error
	Name() string
}

// Attachment is an in-memory file attached to a message
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a multipart/alternative mail with optional attachments
type Message struct {
	FromName    string
	FromAddress string
	To          []string
	Subject     string
	HTML        string
	Text        string
	Headers     map[string]string
	Attachments []Attachment
}

// MaskUser hides most of the local part of an address for display,
// "lager@example.com" -> "la***@example.com"
func MaskUser(user string) string {
	if user == "" {
		return ""
	}
	local, domain, hasDomain := strings.Cut(user, "@")
	runes := []rune(local)
	visible := 2
	if len(runes) <= visible {
		visible = 1
	}
	if len(runes) == 0 {
		visible = 0
	}
	masked := string(runes[:visible]) + "***"
	if hasDomain {
		masked += "@" + domain
	}
	return masked
}
