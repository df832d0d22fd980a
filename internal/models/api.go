package models

import "github.com/bouvin87/BarcodeBuddy/internal/qrcode"

// SendEmailResponse is returned by POST /api/scan-sessions/{id}/send-email
type SendEmailResponse struct {
	Message string       `json:"message"`
	Session *ScanSession `json:"session,omitempty"`
}

// QRParseRequest is the body of POST /api/qr/parse
type QRParseRequest struct {
	Code string `json:"code" validate:"required"`
}

// QRParseResponse carries the payload when the code is structured
type QRParseResponse struct {
	Structured bool            `json:"structured"`
	Payload    *qrcode.Payload `json:"payload,omitempty"`
}

// SMTPTestResponse is returned by POST /api/test-smtp
type SMTPTestResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Config  *SMTPTestConfig `json:"config,omitempty"`
}

type SMTPTestConfig struct {
	Transport string `json:"transport"`
	Host      string `json:"host,omitempty"`
	Port      int    `json:"port,omitempty"`
	User      string `json:"user,omitempty"`
}
