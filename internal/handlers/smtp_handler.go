package handlers

import (
	"net/http"

	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/bouvin87/BarcodeBuddy/internal/health"
	"github.com/bouvin87/BarcodeBuddy/internal/mail"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/services"
	"github.com/bouvin87/BarcodeBuddy/pkg/utils"
)

type SMTPHandler struct {
	cfg          *config.Config
	EmailService *services.EmailService
	checker      *health.HealthChecker
}

func NewSMTPHandler(cfg *config.Config, emailService *services.EmailService, checker *health.HealthChecker) *SMTPHandler {
	return &SMTPHandler{cfg: cfg, EmailService: emailService, checker: checker}
}

// TestSMTP verifies the mail transport and reports the settings in use
func (h *SMTPHandler) TestSMTP(w http.ResponseWriter, r *http.Request) {
	err := h.EmailService.VerifyTransport(r.Context())
	h.checker.RecordMailVerify(err)

	cfg := &models.SMTPTestConfig{Transport: h.EmailService.Mailer.Name()}
	if h.cfg.SMTP.Host != "" {
		cfg.Host = h.cfg.SMTP.Host
		cfg.Port = h.cfg.SMTP.Port
		cfg.User = mail.MaskUser(h.cfg.SMTP.User)
	}

	if err != nil {
		config.GetLoggerEntry("smtp").WithError(err).Warn("[SMTP] connection test failed")
		utils.JSON(w, http.StatusInternalServerError, models.SMTPTestResponse{
			Success: false,
			Message: "SMTP-test misslyckades: " + err.Error(),
			Config:  cfg,
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.SMTPTestResponse{
		Success: true,
		Message: "SMTP-anslutning lyckades",
		Config:  cfg,
	})
}
