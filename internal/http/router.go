package http

import (
	"net/http"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/handlers"
	"github.com/bouvin87/BarcodeBuddy/internal/middleware"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	scanSessionHandler *handlers.ScanSessionHandler,
	reportHandler *handlers.ReportHandler,
	qrHandler *handlers.QRHandler,
	smtpHandler *handlers.SMTPHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	loginRateLimit int,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Health and metrics (no auth)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	// Public API routes - Authentication
	if loginRateLimit <= 0 {
		loginRateLimit = 10
	}
	loginLimiter := httprate.LimitByIP(loginRateLimit, 1*time.Minute)
	r.Handle("/api/auth/login", loginLimiter(http.HandlerFunc(authHandler.Login))).Methods("POST")

	// Protected API routes - Authentication
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/status", authHandler.Status).Methods("GET")
	authAPI.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// Protected API routes - Scan sessions
	sessionsAPI := r.PathPrefix("/api/scan-sessions").Subrouter()
	sessionsAPI.Use(authMiddleware.Authenticate)
	sessionsAPI.HandleFunc("", scanSessionHandler.ListScanSessions).Methods("GET")
	sessionsAPI.HandleFunc("", scanSessionHandler.CreateScanSession).Methods("POST")
	sessionsAPI.HandleFunc("/{id:[0-9]+}", scanSessionHandler.GetScanSession).Methods("GET")
	sessionsAPI.HandleFunc("/{id:[0-9]+}", scanSessionHandler.UpdateScanSession).Methods("PATCH")
	sessionsAPI.HandleFunc("/{id:[0-9]+}", scanSessionHandler.DeleteScanSession).Methods("DELETE")
	sessionsAPI.HandleFunc("/{id:[0-9]+}/barcodes", scanSessionHandler.AddBarcode).Methods("POST")
	sessionsAPI.HandleFunc("/{id:[0-9]+}/barcodes/{index:[0-9]+}", scanSessionHandler.RemoveBarcode).Methods("DELETE")
	sessionsAPI.HandleFunc("/{id:[0-9]+}/summary", scanSessionHandler.GetSummary).Methods("GET")
	sessionsAPI.HandleFunc("/{id:[0-9]+}/send-email", scanSessionHandler.SendEmail).Methods("POST")

	// Protected API routes - Report downloads
	sessionsAPI.HandleFunc("/{id:[0-9]+}/report.csv", reportHandler.DownloadCSV).Methods("GET")
	sessionsAPI.HandleFunc("/{id:[0-9]+}/report.pdf", reportHandler.DownloadPDF).Methods("GET")
	sessionsAPI.HandleFunc("/{id:[0-9]+}/report.xlsx", reportHandler.DownloadXLSX).Methods("GET")

	// Protected API routes - Tools
	toolsAPI := r.PathPrefix("/api").Subrouter()
	toolsAPI.Use(authMiddleware.Authenticate)
	toolsAPI.HandleFunc("/qr/parse", qrHandler.Parse).Methods("POST")
	toolsAPI.HandleFunc("/test-smtp", smtpHandler.TestSMTP).Methods("POST")

	return r
}
