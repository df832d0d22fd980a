package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/repositories"
	"github.com/bouvin87/BarcodeBuddy/internal/services"
	"github.com/bouvin87/BarcodeBuddy/pkg/utils"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 response itself and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request data")
		return false
	}
	if err := utils.Validate(dst); err != nil {
		utils.ValidationError(w, err)
		return false
	}
	return true
}

func pathInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, false
	}
	return n, true
}

// writeServiceError maps domain errors to HTTP responses
func writeServiceError(w http.ResponseWriter, funcName string, err error) {
	switch {
	case errors.Is(err, repositories.ErrScanSessionNotFound):
		utils.Error(w, http.StatusNotFound, "Scan session not found")
	case errors.Is(err, repositories.ErrDuplicateBarcode):
		utils.Error(w, http.StatusConflict, "Barcode already scanned in this session")
	case errors.Is(err, repositories.ErrBarcodeIndex):
		utils.Error(w, http.StatusBadRequest, "Barcode index out of range")
	case errors.Is(err, models.ErrInvalidStatusTransition):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrReportAlreadySent):
		utils.Error(w, http.StatusConflict, "Report already sent for this scan session")
	case errors.Is(err, services.ErrEmptyDeliveryNote):
		utils.Error(w, http.StatusBadRequest, "Delivery note number is required")
	default:
		config.LogError(config.GetLogger(), "handlers", funcName, "unexpected error", nil, err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
