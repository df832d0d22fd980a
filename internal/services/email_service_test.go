package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/bouvin87/BarcodeBuddy/internal/mail"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/repositories"
)

// stubMailer fails while err is set
type stubMailer struct {
	mu   sync.Mutex
	err  error
	sent []*mail.Message
}

func (m *stubMailer) Name() string                     { return "stub" }
func (m *stubMailer) Verify(ctx context.Context) error { return m.err }
func (m *stubMailer) Send(ctx context.Context, msg *mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type stubArchiver struct {
	keys []string
	err  error
}

func (a *stubArchiver) Put(ctx context.Context, key string, data []byte, contentType string) error {
	a.keys = append(a.keys, key)
	return a.err
}

func testEmailConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SMTP.FromName = "BarcodeBuddy"
	cfg.SMTP.FromAddress = "noreply@example.com"
	cfg.SMTP.Recipient = "lager@example.com"
	cfg.SMTP.XMailer = "BarcodeBuddy"
	return cfg
}

func newTestEmailService(mailer mail.Mailer) (*EmailService, *repositories.ScanSessionRepository) {
	repo := repositories.NewScanSessionRepository()
	svc := NewEmailService(testEmailConfig(), repo, mailer, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestSendReport_Success(t *testing.T) {
	mailer := &stubMailer{}
	svc, repo := newTestEmailService(mailer)
	archiver := &stubArchiver{}
	svc.Archiver = archiver
	ctx := context.Background()

	created, _ := repo.Create(ctx, "DN-42", []string{"1;a;b;10", "x"})

	session, err := svc.SendReport(ctx, created.ID)
	if err != nil {
		t.Fatalf("SendReport: %v", err)
	}
	if session.EmailSent != models.EmailSent {
		t.Fatalf("expected sent, got %q", session.EmailSent)
	}
	if len(session.Barcodes) != 2 {
		t.Fatalf("barcodes changed by send: %v", session.Barcodes)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.Subject != "Leveransrapport - DN-42" || msg.To[0] != "lager@example.com" {
		t.Fatalf("unexpected message header %q %v", msg.Subject, msg.To)
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0].Filename != "streckkoder-DN-42.csv" {
		t.Fatalf("unexpected attachments %+v", msg.Attachments)
	}
	if !strings.Contains(string(msg.Attachments[0].Data), "2;;;;0;x") {
		t.Fatalf("csv missing unstructured row: %s", msg.Attachments[0].Data)
	}
	if strings.Contains(msg.Text, "<") || msg.Headers["X-Mailer"] != "BarcodeBuddy" {
		t.Fatalf("unexpected text body or headers")
	}

	if len(archiver.keys) != 1 || !strings.HasSuffix(archiver.keys[0], "streckkoder-DN-42.csv") {
		t.Fatalf("report not archived: %v", archiver.keys)
	}
}

func TestSendReport_FailureThenRetry(t *testing.T) {
	mailer := &stubMailer{err: errors.New("connection timed out")}
	svc, repo := newTestEmailService(mailer)
	ctx := context.Background()

	created, _ := repo.Create(ctx, "DN-7", []string{"A"})

	session, err := svc.SendReport(ctx, created.ID)
	if !errors.Is(err, ErrSendFailed) {
		t.Fatalf("expected ErrSendFailed, got %v", err)
	}
	if session == nil || session.EmailSent != models.EmailFailed {
		t.Fatalf("expected failed session, got %+v", session)
	}

	// retry from failed after the transport recovers
	mailer.err = nil
	session, err = svc.SendReport(ctx, created.ID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if session.EmailSent != models.EmailSent || len(session.Barcodes) != 1 {
		t.Fatalf("unexpected session after retry %+v", session)
	}
}

func TestSendReport_FailedTwiceStaysFailed(t *testing.T) {
	mailer := &stubMailer{err: errors.New("auth failed")}
	svc, repo := newTestEmailService(mailer)
	ctx := context.Background()
	created, _ := repo.Create(ctx, "DN-1", nil)

	for i := 0; i < 2; i++ {
		session, err := svc.SendReport(ctx, created.ID)
		if !errors.Is(err, ErrSendFailed) || session.EmailSent != models.EmailFailed {
			t.Fatalf("attempt %d: %+v, %v", i, session, err)
		}
	}
}

func TestSendReport_AlreadySentAndNotFound(t *testing.T) {
	mailer := &stubMailer{}
	svc, repo := newTestEmailService(mailer)
	ctx := context.Background()
	created, _ := repo.Create(ctx, "DN-1", []string{"A"})

	if _, err := svc.SendReport(ctx, created.ID); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if _, err := svc.SendReport(ctx, created.ID); !errors.Is(err, ErrReportAlreadySent) {
		t.Fatalf("expected ErrReportAlreadySent, got %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("report sent twice")
	}

	if _, err := svc.SendReport(ctx, 999); !errors.Is(err, repositories.ErrScanSessionNotFound) {
		t.Fatalf("expected ErrScanSessionNotFound, got %v", err)
	}
}

func TestSendReport_CancelledRequestStillCompletes(t *testing.T) {
	mailer := &stubMailer{}
	svc, repo := newTestEmailService(mailer)
	created, _ := repo.Create(context.Background(), "DN-1", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session, err := svc.SendReport(ctx, created.ID)
	if err != nil || session.EmailSent != models.EmailSent {
		t.Fatalf("expected send to complete, got %+v, %v", session, err)
	}
}

func TestSendReport_AttachesPDFWhenConfigured(t *testing.T) {
	mailer := &stubMailer{}
	svc, repo := newTestEmailService(mailer)
	svc.cfg.SMTP.AttachPDF = true
	created, _ := repo.Create(context.Background(), "DN-9", []string{"1;a;b;1"})

	if _, err := svc.SendReport(context.Background(), created.ID); err != nil {
		t.Fatalf("SendReport: %v", err)
	}
	atts := mailer.sent[0].Attachments
	if len(atts) != 2 || atts[1].Filename != "leveransrapport-DN-9.pdf" || atts[1].ContentType != "application/pdf" {
		t.Fatalf("unexpected attachments %+v", atts)
	}
}

func TestSendReport_ArchiveFailureDoesNotFailSend(t *testing.T) {
	svc, repo := newTestEmailService(&stubMailer{})
	svc.Archiver = &stubArchiver{err: errors.New("bucket gone")}
	created, _ := repo.Create(context.Background(), "DN-1", nil)

	session, err := svc.SendReport(context.Background(), created.ID)
	if err != nil || session.EmailSent != models.EmailSent {
		t.Fatalf("archive failure leaked into send result: %+v, %v", session, err)
	}
}
