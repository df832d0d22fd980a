package report

import (
	"bytes"
	"fmt"

	"github.com/bouvin87/BarcodeBuddy/internal/qrcode"
	"github.com/jung-kurt/gofpdf/v2"
)

// PDF renders a printable A4 delivery report
func (r *Report) PDF() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// core fonts are cp1252; translate å, ä, ö
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, tr("BarcodeBuddy - Leveransrapport"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, tr("Rapport skapad: "+r.GeneratedStamp()), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Delivery
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, tr("Följesedel"), "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, tr("Följesedelnummer: "+r.DeliveryNoteNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, tr(fmt.Sprintf("Skannad: %s %s", r.ScanDate(), r.ScanTime())), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, tr(fmt.Sprintf("Antal streckkoder: %d", r.Summary.TotalCount)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, tr("Total vikt: "+r.Summary.TotalWeightFormatted), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Orders
	for _, group := range r.Summary.Orders {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(190, 7, tr(fmt.Sprintf("Order %s (%d st, %s)", group.OrderNumber, len(group.Items), qrcode.FormatWeight(group.TotalWeight))), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(80, 6, "Artikel", "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, "Batch", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, "Vikt", "1", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, item := range group.Items {
			pdf.CellFormat(80, 6, tr(truncate(item.ArticleNumber, 40)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(70, 6, tr(truncate(item.BatchNumber, 35)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, qrcode.FormatWeight(item.Weight), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	// Other codes
	if len(r.Summary.Unstructured) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 7, tr(fmt.Sprintf("Övriga streckkoder (%d)", len(r.Summary.Unstructured))), "1", 1, "L", true, 0, "")
		pdf.SetFont("Courier", "", 10)
		for _, code := range r.Summary.Unstructured {
			pdf.CellFormat(190, 6, tr(truncate(code, 90)), "1", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
