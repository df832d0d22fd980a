package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fixedCount int

func (c fixedCount) Count() int { return int(c) }

func TestCheckBasic_MailDoesNotFailReadiness(t *testing.T) {
	h := NewHealthChecker("mock", false, fixedCount(3))
	ctx := context.Background()

	status := h.CheckBasic(ctx)
	if status.Status != "healthy" || status.Mail.Status != "unknown" || status.Redis != nil {
		t.Fatalf("unexpected initial status %+v", status)
	}

	h.RecordMailVerify(errors.New("535 auth failed"))
	status = h.CheckBasic(ctx)
	if status.Status != "healthy" || status.Mail.Status != "failing" || status.Mail.Error == "" {
		t.Fatalf("unexpected status after failed verify %+v", status)
	}

	h.RecordMailVerify(nil)
	if s := h.CheckBasic(ctx); s.Mail.Status != "ok" || s.Mail.VerifiedAt == nil {
		t.Fatalf("unexpected status after verify %+v", s.Mail)
	}
}

func TestCheckBasic_UnreachableRedis(t *testing.T) {
	// redis enabled in config but no client was established
	h := NewHealthChecker("mock", true, nil)
	status := h.CheckBasic(context.Background())
	if status.Status != "unhealthy" || status.Redis == nil || status.Redis.Status != "unhealthy" {
		t.Fatalf("expected unhealthy redis, got %+v", status)
	}
}

func TestCheckDetailed(t *testing.T) {
	h := NewHealthChecker("mock", false, fixedCount(2))
	d := h.CheckDetailed(context.Background())
	if d.ScanSessions != 2 || d.Goroutines == 0 || d.Uptime == "" {
		t.Fatalf("unexpected detailed status %+v", d)
	}
}

func TestFormatters(t *testing.T) {
	cases := []struct {
		in       time.Duration
		expected string
	}{
		{42 * time.Second, "0m 42s"},
		{3*time.Hour + 5*time.Minute, "3h 5m"},
		{50 * time.Hour, "2d 2h 0m"},
	}
	for _, tc := range cases {
		if got := formatUptime(tc.in); got != tc.expected {
			t.Fatalf("formatUptime(%v) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
	if got := formatBytes(1536); got != "1.5 KB" {
		t.Fatalf("formatBytes(1536) = %q", got)
	}
	if got := formatBytes(512); got != "512 B" {
		t.Fatalf("formatBytes(512) = %q", got)
	}
}
