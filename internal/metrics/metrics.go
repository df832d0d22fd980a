package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barcodebuddy_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barcodebuddy_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// BarcodesScanned counts codes accepted into a session, split by kind
	BarcodesScanned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barcodebuddy_barcodes_scanned_total",
			Help: "Barcodes added to scan sessions",
		},
		[]string{"kind"}, // structured | plain
	)

	DuplicateScans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barcodebuddy_duplicate_scans_total",
		Help: "Scans rejected because the code was already in the session",
	})

	EmailReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barcodebuddy_email_reports_total",
			Help: "Report send attempts by outcome",
		},
		[]string{"outcome"}, // sent | failed
	)

	EmailSendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "barcodebuddy_email_send_duration_seconds",
		Help:    "Time spent handing a report to the mail transport",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	ActiveScanSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "barcodebuddy_scan_sessions",
		Help: "Scan sessions currently held in memory",
	})

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barcodebuddy_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // success | failure | cached
	)
)
