package health

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/cache"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SessionCounter reports how many scan sessions are held in memory
type SessionCounter interface {
	Count() int
}

type HealthChecker struct {
	transport    string
	redisEnabled bool
	sessions     SessionCounter
	startedAt    time.Time

	mu         sync.Mutex
	mailStatus MailHealth
}

type HealthStatus struct {
	Status string       `json:"status"`
	Redis  *CacheHealth `json:"redis,omitempty"`
	Mail   MailHealth   `json:"mail"`
}

type CacheHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// MailHealth is the result of the last transport verification
type MailHealth struct {
	Transport  string     `json:"transport"`
	Status     string     `json:"status"` // unknown | ok | failing
	Error      string     `json:"error,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

type DetailedStatus struct {
	HealthStatus
	Uptime        string  `json:"uptime"`
	Goroutines    int     `json:"goroutines"`
	ScanSessions  int     `json:"scan_sessions"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
}

func NewHealthChecker(transport string, redisEnabled bool, sessions SessionCounter) *HealthChecker {
	return &HealthChecker{
		transport:    transport,
		redisEnabled: redisEnabled,
		sessions:     sessions,
		startedAt:    time.Now(),
		mailStatus:   MailHealth{Transport: transport, Status: "unknown"},
	}
}

// RecordMailVerify stores the outcome of a transport check
func (h *HealthChecker) RecordMailVerify(err error) {
	now := time.Now()
	status := MailHealth{Transport: h.transport, Status: "ok", VerifiedAt: &now}
	if err != nil {
		status.Status = "failing"
		status.Error = err.Error()
	}

	h.mu.Lock()
	h.mailStatus = status
	h.mu.Unlock()
}

// CheckBasic is unhealthy only when a configured Redis is unreachable. A
// failing mail transport is reported but does not fail readiness, since a
// failed send is an ordinary session outcome.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	h.mu.Lock()
	mailStatus := h.mailStatus
	h.mu.Unlock()

	status := HealthStatus{Status: "healthy", Mail: mailStatus}
	if h.redisEnabled {
		redis := h.checkRedis(ctx)
		status.Redis = &redis
		if redis.Status != "healthy" {
			status.Status = "unhealthy"
		}
	}
	return status
}

func (h *HealthChecker) checkRedis(ctx context.Context) CacheHealth {
	start := time.Now()
	ok := cache.IsHealthy(ctx)
	responseTime := time.Since(start).Milliseconds()

	if !ok {
		return CacheHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return CacheHealth{Status: "healthy", ResponseTime: responseTime}
}

// CheckDetailed adds process and host statistics
func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	d := DetailedStatus{
		HealthStatus: h.CheckBasic(ctx),
		Uptime:       formatUptime(time.Since(h.startedAt)),
		Goroutines:   runtime.NumGoroutine(),
	}
	if h.sessions != nil {
		d.ScanSessions = h.sessions.Count()
	}

	if cpuPercents, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(cpuPercents) > 0 {
		d.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		d.MemoryPercent = memStats.UsedPercent
		d.MemoryUsed = formatBytes(memStats.Used)
		d.MemoryTotal = formatBytes(memStats.Total)
	}
	return d
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, int(d.Seconds())%60)
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
