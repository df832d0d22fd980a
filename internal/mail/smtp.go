package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp transport is not configured")

// SMTPMailer sends through an SMTP relay (implicit TLS on 465 by default)
type SMTPMailer struct {
	dialer  *gomail.Dialer
	timeout time.Duration
	log     *logrus.Entry
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	d := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass)
	d.SSL = cfg.SMTP.SSL

	timeout := time.Duration(cfg.SMTP.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &SMTPMailer{
		dialer:  d,
		timeout: timeout,
		log:     config.GetLoggerEntry("mail"),
	}
}

func (s *SMTPMailer) Name() string {
	return fmt.Sprintf("smtp://%s:%d", s.dialer.Host, s.dialer.Port)
}

// Send makes one delivery attempt. If ctx or the transport timeout expires
// first the attempt is reported as failed, but the SMTP conversation is not
// aborted: a late delivery still reaches the recipient and is logged as such,
// so a retry after a timeout can produce a second copy of the report.
func (s *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if s.dialer.Host == "" {
		return ErrNotConfigured
	}
	m := buildMessage(msg)

	return s.withTimeout(ctx, func() error {
		return s.dialer.DialAndSend(m)
	})
}

// Verify opens and closes an authenticated connection
func (s *SMTPMailer) Verify(ctx context.Context) error {
	if s.dialer.Host == "" {
		return ErrNotConfigured
	}
	return s.withTimeout(ctx, func() error {
		conn, err := s.dialer.Dial()
		if err != nil {
			return err
		}
		return conn.Close()
	})
}

func (s *SMTPMailer) withTimeout(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		s.log.Warnf("[SMTP] giving up after %s, the attempt keeps running in the background", s.timeout)
		go s.logLateResult(done)
		return fmt.Errorf("smtp: %w", ctx.Err())
	}
}

// logLateResult reports how an abandoned attempt finished
func (s *SMTPMailer) logLateResult(done <-chan error) {
	if err := <-done; err != nil {
		s.log.WithError(err).Warn("[SMTP] abandoned attempt failed")
		return
	}
	s.log.Warn("[SMTP] abandoned attempt delivered after the timeout, the session was already marked failed")
}

func buildMessage(msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.FromAddress, msg.FromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	for k, v := range msg.Headers {
		m.SetHeader(k, v)
	}

	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	for _, a := range msg.Attachments {
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(a.Data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}
	return m
}
