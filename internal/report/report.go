package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/qrcode"
	"github.com/bouvin87/BarcodeBuddy/internal/timeutil"
)

// Report is everything needed to render a delivery report for one scan session
type Report struct {
	DeliveryNoteNumber string
	CreatedAt          time.Time
	GeneratedAt        time.Time
	Barcodes           []string
	Summary            qrcode.Summary
}

// Row is one scanned code as it appears in the CSV and spreadsheet
type Row struct {
	Index         int
	OrderNumber   string
	ArticleNumber string
	BatchNumber   string
	Weight        float64
	RawData       string
}

func New(session *models.ScanSession, generatedAt time.Time) *Report {
	return &Report{
		DeliveryNoteNumber: session.DeliveryNoteNumber,
		CreatedAt:          session.CreatedAt,
		GeneratedAt:        generatedAt,
		Barcodes:           append([]string(nil), session.Barcodes...),
		Summary:            qrcode.Summarize(session.Barcodes),
	}
}

// Rows lists the codes in scan order with a 1-based index. Unstructured codes
// have empty order, article and batch and weight 0.
func (r *Report) Rows() []Row {
	rows := make([]Row, 0, len(r.Barcodes))
	for i, code := range r.Barcodes {
		row := Row{Index: i + 1, RawData: code}
		if p, ok := qrcode.Parse(code); ok {
			row.OrderNumber = p.OrderNumber
			row.ArticleNumber = p.ArticleNumber
			row.BatchNumber = p.BatchNumber
			row.Weight = p.Weight
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *Report) Subject() string {
	return "Leveransrapport - " + r.DeliveryNoteNumber
}

func (r *Report) CSVFilename() string {
	return "streckkoder-" + safeName(r.DeliveryNoteNumber) + ".csv"
}

func (r *Report) PDFFilename() string {
	return "leveransrapport-" + safeName(r.DeliveryNoteNumber) + ".pdf"
}

func (r *Report) XLSXFilename() string {
	return "leveransrapport-" + safeName(r.DeliveryNoteNumber) + ".xlsx"
}

func (r *Report) ScanDate() string {
	return timeutil.FormatLocal(r.CreatedAt, timeutil.DateLayout)
}

func (r *Report) ScanTime() string {
	return timeutil.FormatLocal(r.CreatedAt, timeutil.TimeLayout)
}

func (r *Report) GeneratedStamp() string {
	return timeutil.FormatLocal(r.GeneratedAt, timeutil.DateTimeLayout)
}

// formatWeightValue renders a weight without trailing zeros, "12.5", "0"
func formatWeightValue(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}

var unsafeFilenameChars = strings.NewReplacer("/", "_", "\\", "_", "\"", "_", "\r", "", "\n", "")

func safeName(s string) string {
	return unsafeFilenameChars.Replace(s)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainText strips tags from the HTML body for the text/plain alternative
func PlainText(html string) string {
	text := tagPattern.ReplaceAllString(html, "")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func (r *Report) String() string {
	return fmt.Sprintf("report %s (%d codes, %s)", r.DeliveryNoteNumber, r.Summary.TotalCount, r.Summary.TotalWeightFormatted)
}
