package services

import (
	"context"
	"errors"
	"strings"

	"github.com/bouvin87/BarcodeBuddy/internal/metrics"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/qrcode"
	"github.com/bouvin87/BarcodeBuddy/internal/repositories"
)

var ErrEmptyDeliveryNote = errors.New("delivery note number is required")

type ScanSessionService struct {
	Repo *repositories.ScanSessionRepository
}

func NewScanSessionService(repo *repositories.ScanSessionRepository) *ScanSessionService {
	return &ScanSessionService{Repo: repo}
}

func (s *ScanSessionService) CreateScanSession(ctx context.Context, req *models.CreateScanSessionRequest) (*models.ScanSession, error) {
	dn := strings.TrimSpace(req.DeliveryNoteNumber)
	if dn == "" {
		return nil, ErrEmptyDeliveryNote
	}

	session, err := s.Repo.Create(ctx, dn, req.Barcodes)
	if err != nil {
		return nil, err
	}
	metrics.ActiveScanSessions.Set(float64(s.Repo.Count()))
	return session, nil
}

func (s *ScanSessionService) GetScanSession(ctx context.Context, id int) (*models.ScanSession, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ScanSessionService) ListScanSessions(ctx context.Context) ([]*models.ScanSession, error) {
	return s.Repo.List(ctx)
}

// UpdateScanSession applies a PATCH; status changes must follow the email lifecycle
func (s *ScanSessionService) UpdateScanSession(ctx context.Context, id int, req *models.UpdateScanSessionRequest) (*models.ScanSession, error) {
	update := models.ScanSessionUpdate{Barcodes: req.Barcodes}
	if req.EmailSent != nil {
		status := models.EmailStatus(*req.EmailSent)
		update.EmailSent = &status
	}
	return s.Repo.Update(ctx, id, update)
}

func (s *ScanSessionService) DeleteScanSession(ctx context.Context, id int) error {
	if !s.Repo.Delete(ctx, id) {
		return repositories.ErrScanSessionNotFound
	}
	metrics.ActiveScanSessions.Set(float64(s.Repo.Count()))
	return nil
}

// AddBarcode adds a scanned code, or one assembled from the structured fields
func (s *ScanSessionService) AddBarcode(ctx context.Context, id int, req *models.AddBarcodeRequest) (*models.ScanSession, error) {
	code := req.Code
	if code == "" {
		code = qrcode.JoinStructured(req.OrderNumber, req.ArticleNumber, req.BatchNumber, req.Weight)
	}

	session, err := s.Repo.AddBarcode(ctx, id, code)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateBarcode) {
			metrics.DuplicateScans.Inc()
		}
		return nil, err
	}

	kind := "plain"
	if qrcode.IsStructured(code) {
		kind = "structured"
	}
	metrics.BarcodesScanned.WithLabelValues(kind).Inc()
	return session, nil
}

func (s *ScanSessionService) RemoveBarcode(ctx context.Context, id, index int) (*models.ScanSession, error) {
	return s.Repo.RemoveBarcode(ctx, id, index)
}

// Summary runs the aggregation over the session's codes
func (s *ScanSessionService) Summary(ctx context.Context, id int) (*qrcode.Summary, error) {
	session, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := qrcode.Summarize(session.Barcodes)
	return &summary, nil
}
