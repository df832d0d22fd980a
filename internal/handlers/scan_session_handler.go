package handlers

import (
	"errors"
	"net/http"

	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/services"
	"github.com/bouvin87/BarcodeBuddy/pkg/utils"
)

// sendFailedMessage is shown to the warehouse user when the transport fails
const sendFailedMessage = "Fel vid skickning av e-post. Kontrollera konfiguration och anslutning."

type ScanSessionHandler struct {
	Service      *services.ScanSessionService
	EmailService *services.EmailService
}

func NewScanSessionHandler(s *services.ScanSessionService, emailService *services.EmailService) *ScanSessionHandler {
	return &ScanSessionHandler{Service: s, EmailService: emailService}
}

func (h *ScanSessionHandler) CreateScanSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScanSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.Service.CreateScanSession(r.Context(), &req)
	if err != nil {
		writeServiceError(w, "CreateScanSession", err)
		return
	}

	utils.JSON(w, http.StatusOK, session)
}

func (h *ScanSessionHandler) ListScanSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Service.ListScanSessions(r.Context())
	if err != nil {
		writeServiceError(w, "ListScanSessions", err)
		return
	}

	utils.JSON(w, http.StatusOK, sessions)
}

func (h *ScanSessionHandler) GetScanSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid scan session id")
		return
	}

	session, err := h.Service.GetScanSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, "GetScanSession", err)
		return
	}

	utils.JSON(w, http.StatusOK, session)
}

func (h *ScanSessionHandler) UpdateScanSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid scan session id")
		return
	}

	var req models.UpdateScanSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.Service.UpdateScanSession(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, "UpdateScanSession", err)
		return
	}

	utils.JSON(w, http.StatusOK, session)
}

func (h *ScanSessionHandler) DeleteScanSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid scan session id")
		return
	}

	if err := h.Service.DeleteScanSession(r.Context(), id); err != nil {
		writeServiceError(w, "DeleteScanSession", err)
		return
	}

	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "Scan session deleted"})
}

func (h *ScanSessionHandler) AddBarcode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid scan session id")
		return
	}

	var req models.AddBarcodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.Service.AddBarcode(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, "AddBarcode", err)
		return
	}

	utils.JSON(w, http.StatusCreated, session)
}

func (h *ScanSessionHandler) RemoveBarcode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid scan session id")
		return
	}
	index, ok := pathInt(r, "index")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid barcode index")
		return
	}

	session, err := h.Service.RemoveBarcode(r.Context(), id, index)
	if err != nil {
		writeServiceError(w, "RemoveBarcode", err)
		return
	}

	utils.JSON(w, http.StatusOK, session)
}

func (h *ScanSessionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid scan session id")
		return
	}

	summary, err := h.Service.Summary(r.Context(), id)
	if err != nil {
		writeServiceError(w, "GetSummary", err)
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

// SendEmail makes one send attempt. Retrying after a failure is done by
// calling it again.
func (h *ScanSessionHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid scan session id")
		return
	}

	session, err := h.EmailService.SendReport(r.Context(), id)
	if errors.Is(err, services.ErrSendFailed) {
		utils.JSON(w, http.StatusInternalServerError, models.SendEmailResponse{Message: sendFailedMessage, Session: session})
		return
	}
	if err != nil {
		writeServiceError(w, "SendEmail", err)
		return
	}

	utils.JSON(w, http.StatusOK, models.SendEmailResponse{Message: "Email sent successfully", Session: session})
}
