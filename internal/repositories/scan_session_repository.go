package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/scanbuffer"
)

var (
	ErrScanSessionNotFound = errors.New("scan session not found")
	ErrDuplicateBarcode    = errors.New("barcode already scanned in this session")
	ErrBarcodeIndex        = errors.New("barcode index out of range")
)

// ScanSessionRepository keeps scan sessions in process memory. Sessions are
// lost on restart. Callers only ever see copies of the stored sessions.
type ScanSessionRepository struct {
	mu       sync.RWMutex
	sessions map[int]*models.ScanSession
	nextID   int
	now      func() time.Time
}

func NewScanSessionRepository() *ScanSessionRepository {
	return &ScanSessionRepository{
		sessions: make(map[int]*models.ScanSession),
		nextID:   1,
		now:      time.Now,
	}
}

// Create stores a new pending session; ids are never reused
func (r *ScanSessionRepository) Create(ctx context.Context, deliveryNoteNumber string, barcodes []string) (*models.ScanSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := &models.ScanSession{
		ID:                 r.nextID,
		DeliveryNoteNumber: deliveryNoteNumber,
		Barcodes:           append(make([]string, 0, len(barcodes)), barcodes...),
		EmailSent:          models.EmailPending,
		CreatedAt:          r.now(),
	}
	r.nextID++
	r.sessions[session.ID] = session

	return session.Clone(), nil
}

// Get retrieves a scan session by ID
func (r *ScanSessionRepository) Get(ctx context.Context, id int) (*models.ScanSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrScanSessionNotFound
	}
	return session.Clone(), nil
}

// List returns all sessions, newest first
func (r *ScanSessionRepository) List(ctx context.Context) ([]*models.ScanSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*models.ScanSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s.Clone())
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID > sessions[j].ID })
	return sessions, nil
}

// Update merges the supplied fields. ID and CreatedAt never change, and the
// email status only moves along the allowed lifecycle.
func (r *ScanSessionRepository) Update(ctx context.Context, id int, update models.ScanSessionUpdate) (*models.ScanSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[id]
	if !ok {
		return nil, ErrScanSessionNotFound
	}

	status := existing.EmailSent
	if update.EmailSent != nil {
		next, err := existing.EmailSent.Transition(*update.EmailSent)
		if err != nil {
			return nil, err
		}
		status = next
	}

	if update.Barcodes != nil {
		existing.Barcodes = append(make([]string, 0, len(*update.Barcodes)), (*update.Barcodes)...)
	}
	existing.EmailSent = status

	return existing.Clone(), nil
}

// AddBarcode appends code unless the session already holds it. The check and
// the append happen under the same lock.
func (r *ScanSessionRepository) AddBarcode(ctx context.Context, id int, code string) (*models.ScanSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[id]
	if !ok {
		return nil, ErrScanSessionNotFound
	}
	if scanbuffer.IsDuplicate(existing.Barcodes, code) {
		return nil, ErrDuplicateBarcode
	}

	existing.Barcodes = append(existing.Barcodes, code)
	return existing.Clone(), nil
}

// RemoveBarcode deletes the code at index (0-based)
func (r *ScanSessionRepository) RemoveBarcode(ctx context.Context, id int, index int) (*models.ScanSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[id]
	if !ok {
		return nil, ErrScanSessionNotFound
	}
	if index < 0 || index >= len(existing.Barcodes) {
		return nil, ErrBarcodeIndex
	}

	barcodes := make([]string, 0, len(existing.Barcodes)-1)
	barcodes = append(barcodes, existing.Barcodes[:index]...)
	existing.Barcodes = append(barcodes, existing.Barcodes[index+1:]...)
	return existing.Clone(), nil
}

// Delete removes a session and reports whether it existed
func (r *ScanSessionRepository) Delete(ctx context.Context, id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Count returns the number of stored sessions
func (r *ScanSessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
