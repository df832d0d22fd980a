package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/archive"
	"github.com/bouvin87/BarcodeBuddy/internal/auth"
	"github.com/bouvin87/BarcodeBuddy/internal/cache"
	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/bouvin87/BarcodeBuddy/internal/handlers"
	"github.com/bouvin87/BarcodeBuddy/internal/health"
	h "github.com/bouvin87/BarcodeBuddy/internal/http"
	"github.com/bouvin87/BarcodeBuddy/internal/mail"
	"github.com/bouvin87/BarcodeBuddy/internal/middleware"
	"github.com/bouvin87/BarcodeBuddy/internal/repositories"
	"github.com/bouvin87/BarcodeBuddy/internal/services"
)

const purgeInterval = 10 * time.Minute

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Server port (overrides config)")
	hashPassword := flag.String("hash-password", "", "Print a bcrypt hash for APP_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg := config.LoadFile(*configPath)
	if *port != 0 {
		cfg.Server.Port = *port
	}
	log := config.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if cfg.Redis.Enabled {
		if err := cache.Init(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password); err != nil {
			log.Warnf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
		} else {
			log.Info("[Redis] Cache connected successfully")
			defer cache.Close()
		}
	}

	// Mail transport: SMTP when a host is configured, otherwise log only
	var mailer mail.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg)
	} else {
		log.Warn("[SMTP] SMTP_HOST not set, using mock transport (reports are only logged)")
		mailer = mail.NewMockMailer()
	}

	// Archive of sent reports (optional)
	var archiver archive.Archiver
	if cfg.Archive.Enabled {
		s3Archiver, err := archive.NewS3Archiver(ctx, cfg)
		if err != nil {
			log.Warnf("[Archive] disabled: %v", err)
		} else {
			archiver = s3Archiver
			log.Infof("[Archive] sent reports will be copied to bucket %s", cfg.Archive.Bucket)
		}
	}

	// Repositories
	scanSessionRepo := repositories.NewScanSessionRepository()
	authSessionRepo := repositories.NewAuthSessionRepository()

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	scanSessionService := services.NewScanSessionService(scanSessionRepo)
	emailService := services.NewEmailService(cfg, scanSessionRepo, mailer, archiver)
	authService := services.NewAuthService(cfg, jwtManager, authSessionRepo)

	healthChecker := health.NewHealthChecker(mailer.Name(), cache.IsEnabled(), scanSessionRepo)

	// Verify the transport at startup; a failure is logged, not fatal
	go func() {
		verifyCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		err := emailService.VerifyTransport(verifyCtx)
		healthChecker.RecordMailVerify(err)
		if err != nil {
			log.WithError(err).Error("[SMTP] connection check failed")
			return
		}
		log.Infof("[SMTP] connection OK (%s)", mailer.Name())
	}()

	// Drop expired logins
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := authSessionRepo.PurgeExpired(ctx); n > 0 {
					log.Debugf("[Auth] purged %d expired sessions", n)
				}
			}
		}
	}()

	router := h.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewScanSessionHandler(scanSessionService, emailService),
		handlers.NewReportHandler(scanSessionService),
		handlers.NewQRHandler(),
		handlers.NewSMTPHandler(cfg, emailService, healthChecker),
		handlers.NewHealthHandler(healthChecker),
		middleware.NewAuthMiddleware(jwtManager, authSessionRepo),
		cfg.Server.LoginRateLimit,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	requestLogger := middleware.NewRequestLogger(log)

	// Wrap with panic recovery, request logging and CORS
	handler := middleware.PanicRecovery(requestLogger.Handler(corsMiddleware(router)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// send-email waits for the SMTP transport
		WriteTimeout: time.Duration(cfg.SMTP.TimeoutSeconds+30) * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		log.Infof("Server running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
