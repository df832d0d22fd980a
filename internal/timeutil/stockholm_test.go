package timeutil

import (
	"testing"
	"time"
)

func TestFormatLocal_UsesSwedishLayouts(t *testing.T) {
	// 10:30 UTC in January is 11:30 in Stockholm (CET)
	ts := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)

	if got := FormatLocal(ts, DateLayout); got != "2024-01-15" {
		t.Fatalf("date: expected 2024-01-15, got %s", got)
	}
	if got := FormatLocal(ts, TimeLayout); got != "11:30:45" {
		t.Fatalf("time: expected 11:30:45, got %s", got)
	}
	if got := FormatLocal(ts, ClockLayout); got != "11:30" {
		t.Fatalf("clock: expected 11:30, got %s", got)
	}
}

func TestStockholm_ObservesSummerTime(t *testing.T) {
	// 10:30 UTC in July is 12:30 in Stockholm (CEST)
	ts := time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)

	if got := FormatLocal(ts, ClockLayout); got != "12:30" {
		t.Fatalf("expected 12:30, got %s", got)
	}
	if name, offset := ToLocal(ts).Zone(); offset != 2*60*60 {
		t.Fatalf("expected +02:00 in July, got %s %d", name, offset)
	}
}
