package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/archive"
	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/bouvin87/BarcodeBuddy/internal/mail"
	"github.com/bouvin87/BarcodeBuddy/internal/metrics"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/report"
	"github.com/bouvin87/BarcodeBuddy/internal/repositories"
	"github.com/bouvin87/BarcodeBuddy/internal/timeutil"
	"github.com/sirupsen/logrus"
)

var (
	ErrReportAlreadySent = errors.New("report already sent for this scan session")
	ErrSendFailed        = errors.New("report could not be sent")
)

const archiveTimeout = 30 * time.Second

// EmailService builds a session's report and hands it to the mail transport.
// Each call is one attempt; the session ends up sent or failed.
type EmailService struct {
	Repo     *repositories.ScanSessionRepository
	Mailer   mail.Mailer
	Archiver archive.Archiver // optional

	cfg *config.Config
	now func() time.Time
	log *logrus.Entry
}

func NewEmailService(cfg *config.Config, repo *repositories.ScanSessionRepository, mailer mail.Mailer, archiver archive.Archiver) *EmailService {
	return &EmailService{
		Repo:     repo,
		Mailer:   mailer,
		Archiver: archiver,
		cfg:      cfg,
		now:      timeutil.Now,
		log:      config.GetLoggerEntry("email"),
	}
}

// SendReport sends the report for session id. A transport failure (including
// a timeout) marks the session failed and returns an error wrapping
// ErrSendFailed together with the updated session.
func (s *EmailService) SendReport(ctx context.Context, id int) (*models.ScanSession, error) {
	session, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.EmailSent == models.EmailSent {
		return session, ErrReportAlreadySent
	}

	// the attempt runs to completion even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	rep := report.New(session, s.now())
	log := s.log.WithFields(logrus.Fields{
		"session_id":    session.ID,
		"delivery_note": session.DeliveryNoteNumber,
		"barcodes":      len(session.Barcodes),
		"transport":     s.Mailer.Name(),
	})

	msg, csvData, err := s.buildMessage(rep)
	if err == nil {
		start := time.Now()
		err = s.Mailer.Send(ctx, msg)
		metrics.EmailSendDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		metrics.EmailReports.WithLabelValues(string(models.EmailFailed)).Inc()
		log.WithError(err).Error("[Email] report send failed")

		updated, uerr := s.setStatus(ctx, id, models.EmailFailed)
		if uerr != nil {
			return nil, uerr
		}
		return updated, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	metrics.EmailReports.WithLabelValues(string(models.EmailSent)).Inc()
	log.Info("[Email] report sent")

	updated, err := s.setStatus(ctx, id, models.EmailSent)
	if err != nil {
		return nil, err
	}

	s.archive(ctx, rep, csvData)
	return updated, nil
}

func (s *EmailService) setStatus(ctx context.Context, id int, status models.EmailStatus) (*models.ScanSession, error) {
	updated, err := s.Repo.Update(ctx, id, models.ScanSessionUpdate{EmailSent: &status})
	if errors.Is(err, models.ErrInvalidStatusTransition) {
		// another attempt for the same session finished first
		s.log.WithField("session_id", id).Warnf("[Email] status not changed to %s: %v", status, err)
		return s.Repo.Get(ctx, id)
	}
	return updated, err
}

func (s *EmailService) buildMessage(rep *report.Report) (*mail.Message, []byte, error) {
	html, err := rep.HTML()
	if err != nil {
		return nil, nil, fmt.Errorf("render html: %w", err)
	}
	csvData, err := rep.CSV()
	if err != nil {
		return nil, nil, fmt.Errorf("render csv: %w", err)
	}

	msg := &mail.Message{
		FromName:    s.cfg.SMTP.FromName,
		FromAddress: s.cfg.FromAddress(),
		To:          []string{s.cfg.SMTP.Recipient},
		Subject:     rep.Subject(),
		HTML:        html,
		Text:        report.PlainText(html),
		Headers:     map[string]string{"X-Mailer": s.cfg.SMTP.XMailer},
		Attachments: []mail.Attachment{
			{Filename: rep.CSVFilename(), ContentType: "text/csv", Data: csvData},
		},
	}

	if s.cfg.SMTP.AttachPDF {
		pdf, err := rep.PDF()
		if err != nil {
			return nil, nil, fmt.Errorf("render pdf: %w", err)
		}
		msg.Attachments = append(msg.Attachments, mail.Attachment{
			Filename: rep.PDFFilename(), ContentType: "application/pdf", Data: pdf,
		})
	}
	return msg, csvData, nil
}

// archive keeps a copy of the sent CSV; failures are logged only
func (s *EmailService) archive(ctx context.Context, rep *report.Report, csvData []byte) {
	if s.Archiver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()

	key := archive.ReportKey(rep.CSVFilename(), rep.GeneratedAt)
	if err := s.Archiver.Put(ctx, key, csvData, "text/csv"); err != nil {
		config.LogError(config.GetLogger(), "services", "EmailService.archive", "archive sent report", key, err)
		return
	}
	s.log.WithField("key", key).Info("[Email] report archived")
}

// VerifyTransport checks that the mail transport accepts connections
func (s *EmailService) VerifyTransport(ctx context.Context) error {
	return s.Mailer.Verify(ctx)
}
