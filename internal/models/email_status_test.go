package models

import (
	"errors"
	"testing"
)

func TestEmailStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    EmailStatus
		to      EmailStatus
		allowed bool
	}{
		{EmailPending, EmailSent, true},
		{EmailPending, EmailFailed, true},
		{EmailPending, EmailPending, true},
		{EmailFailed, EmailSent, true},
		{EmailFailed, EmailFailed, true},
		{EmailFailed, EmailPending, false},
		{EmailSent, EmailSent, true},
		{EmailSent, EmailFailed, false},
		{EmailSent, EmailPending, false},
		{EmailPending, EmailStatus("queued"), false},
	}
	for _, tc := range cases {
		got, err := tc.from.Transition(tc.to)
		if tc.allowed {
			if err != nil || got != tc.to {
				t.Fatalf("%s -> %s expected allowed, got %s, %v", tc.from, tc.to, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidStatusTransition) {
			t.Fatalf("%s -> %s expected ErrInvalidStatusTransition, got %v", tc.from, tc.to, err)
		}
		if got != tc.from {
			t.Fatalf("%s -> %s rejected move must keep status, got %s", tc.from, tc.to, got)
		}
	}
}

func TestScanSession_CloneDoesNotShareBarcodes(t *testing.T) {
	s := &ScanSession{ID: 1, Barcodes: []string{"A", "B"}}
	c := s.Clone()
	c.Barcodes[0] = "X"
	if s.Barcodes[0] != "A" {
		t.Fatalf("clone shares barcode storage with original")
	}
}
