package handlers

import (
	"fmt"
	"net/http"

	"github.com/bouvin87/BarcodeBuddy/internal/report"
	"github.com/bouvin87/BarcodeBuddy/internal/services"
	"github.com/bouvin87/BarcodeBuddy/internal/timeutil"
	"github.com/bouvin87/BarcodeBuddy/pkg/utils"
)

// ReportHandler serves the report renditions for download
type ReportHandler struct {
	Service *services.ScanSessionService
}

func NewReportHandler(s *services.ScanSessionService) *ReportHandler {
	return &ReportHandler{Service: s}
}

func (h *ReportHandler) load(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	id, ok := pathInt(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid scan session id")
		return nil, false
	}

	session, err := h.Service.GetScanSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, "ReportHandler.load", err)
		return nil, false
	}
	return report.New(session, timeutil.Now()), true
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *ReportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}

	data, err := rep.CSV()
	if err != nil {
		writeServiceError(w, "DownloadCSV", err)
		return
	}
	writeFile(w, "text/csv; charset=utf-8", rep.CSVFilename(), data)
}

func (h *ReportHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}

	data, err := rep.PDF()
	if err != nil {
		writeServiceError(w, "DownloadPDF", err)
		return
	}
	writeFile(w, "application/pdf", rep.PDFFilename(), data)
}

func (h *ReportHandler) DownloadXLSX(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}

	data, err := rep.XLSX()
	if err != nil {
		writeServiceError(w, "DownloadXLSX", err)
		return
	}
	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rep.XLSXFilename(), data)
}
