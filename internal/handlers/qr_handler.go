package handlers

import (
	"net/http"

	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/qrcode"
	"github.com/bouvin87/BarcodeBuddy/pkg/utils"
)

type QRHandler struct{}

func NewQRHandler() *QRHandler {
	return &QRHandler{}
}

// Parse classifies a code; plain barcodes are not an error
func (h *QRHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req models.QRParseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payload, ok := qrcode.Parse(req.Code)
	if !ok {
		utils.JSON(w, http.StatusOK, models.QRParseResponse{Structured: false})
		return
	}
	utils.JSON(w, http.StatusOK, models.QRParseResponse{Structured: true, Payload: &payload})
}
