package scanbuffer

import (
	"errors"
	"sync"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/timeutil"
)

// ErrDuplicate is returned when a code is already in the buffer.
var ErrDuplicate = errors.New("barcode already scanned")

// ErrIndexOutOfRange is returned by Remove for an index outside the buffer.
var ErrIndexOutOfRange = errors.New("barcode index out of range")

// ScannedEntry is one code in the in-progress buffer.
type ScannedEntry struct {
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"` // HH:MM, display only
}

// IsDuplicate reports whether candidate is already present in buffer.
// Comparison is exact and case-sensitive.
func IsDuplicate(buffer []string, candidate string) bool {
	for _, v := range buffer {
		if v == candidate {
			return true
		}
	}
	return false
}

// Buffer is the authoritative list of codes scanned for the current delivery.
// Add checks and inserts under one lock, so rapid successive scans cannot
// slip a duplicate past the guard.
type Buffer struct {
	mu      sync.Mutex
	entries []ScannedEntry
	now     func() time.Time
}

// New returns an empty buffer stamped with Stockholm local time.
func New() *Buffer {
	return &Buffer{now: timeutil.Now}
}

// Add appends code unless it is already present.
func (b *Buffer) Add(code string) (ScannedEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.entries {
		if e.Value == code {
			return ScannedEntry{}, ErrDuplicate
		}
	}

	entry := ScannedEntry{
		Value:     code,
		Timestamp: b.now().Format(timeutil.ClockLayout),
	}
	b.entries = append(b.entries, entry)
	return entry, nil
}

// Remove deletes the entry at index.
func (b *Buffer) Remove(index int) (ScannedEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.entries) {
		return ScannedEntry{}, ErrIndexOutOfRange
	}
	removed := b.entries[index]
	b.entries = append(b.entries[:index:index], b.entries[index+1:]...)
	return removed, nil
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.entries = nil
	b.mu.Unlock()
}

// Len returns the number of buffered codes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Values returns the buffered codes in insertion order.
func (b *Buffer) Values() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	values := make([]string, len(b.entries))
	for i, e := range b.entries {
		values[i] = e.Value
	}
	return values
}

// Entries returns a copy of the buffered entries.
func (b *Buffer) Entries() []ScannedEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ScannedEntry(nil), b.entries...)
}
