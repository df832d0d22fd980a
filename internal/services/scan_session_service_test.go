package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/repositories"
)

func newTestScanSessionService() *ScanSessionService {
	return NewScanSessionService(repositories.NewScanSessionRepository())
}

func TestCreateScanSession(t *testing.T) {
	svc := newTestScanSessionService()
	ctx := context.Background()

	session, err := svc.CreateScanSession(ctx, &models.CreateScanSessionRequest{DeliveryNoteNumber: "  DN-1 ", Barcodes: []string{"A"}})
	if err != nil {
		t.Fatalf("CreateScanSession: %v", err)
	}
	if session.DeliveryNoteNumber != "DN-1" || session.EmailSent != models.EmailPending {
		t.Fatalf("unexpected session %+v", session)
	}

	if _, err := svc.CreateScanSession(ctx, &models.CreateScanSessionRequest{DeliveryNoteNumber: "   "}); !errors.Is(err, ErrEmptyDeliveryNote) {
		t.Fatalf("expected ErrEmptyDeliveryNote, got %v", err)
	}
}

func TestAddBarcode_StructuredEntryAndDuplicates(t *testing.T) {
	svc := newTestScanSessionService()
	ctx := context.Background()
	session, _ := svc.CreateScanSession(ctx, &models.CreateScanSessionRequest{DeliveryNoteNumber: "DN-1"})

	got, err := svc.AddBarcode(ctx, session.ID, &models.AddBarcodeRequest{OrderNumber: "1001", ArticleNumber: "ART", BatchNumber: "B1"})
	if err != nil {
		t.Fatalf("AddBarcode structured: %v", err)
	}
	if got.Barcodes[0] != "1001;ART;B1;0" {
		t.Fatalf("expected joined code with default weight, got %q", got.Barcodes[0])
	}

	if _, err := svc.AddBarcode(ctx, session.ID, &models.AddBarcodeRequest{Code: "1001;ART;B1;0"}); !errors.Is(err, repositories.ErrDuplicateBarcode) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	got, err = svc.AddBarcode(ctx, session.ID, &models.AddBarcodeRequest{Code: "4006381333931"})
	if err != nil || len(got.Barcodes) != 2 {
		t.Fatalf("AddBarcode plain = %+v, %v", got, err)
	}
}

func TestUpdateScanSession_Lifecycle(t *testing.T) {
	svc := newTestScanSessionService()
	ctx := context.Background()
	session, _ := svc.CreateScanSession(ctx, &models.CreateScanSessionRequest{DeliveryNoteNumber: "DN-1"})

	sent := "sent"
	if _, err := svc.UpdateScanSession(ctx, session.ID, &models.UpdateScanSessionRequest{EmailSent: &sent}); err != nil {
		t.Fatalf("pending -> sent: %v", err)
	}
	pending := "pending"
	if _, err := svc.UpdateScanSession(ctx, session.ID, &models.UpdateScanSessionRequest{EmailSent: &pending}); !errors.Is(err, models.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestSummaryAndDelete(t *testing.T) {
	svc := newTestScanSessionService()
	ctx := context.Background()
	session, _ := svc.CreateScanSession(ctx, &models.CreateScanSessionRequest{
		DeliveryNoteNumber: "DN-1",
		Barcodes:           []string{"1;a;b;10", "1;c;d;5", "x"},
	})

	summary, err := svc.Summary(ctx, session.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalWeight != 15 || summary.TotalCount != 3 || len(summary.Orders) != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	if err := svc.DeleteScanSession(ctx, session.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.DeleteScanSession(ctx, session.ID); !errors.Is(err, repositories.ErrScanSessionNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if _, err := svc.Summary(ctx, session.ID); !errors.Is(err, repositories.ErrScanSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
