package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/xuri/excelize/v2"
)

func sampleSession() *models.ScanSession {
	return &models.ScanSession{
		ID:                 1,
		DeliveryNoteNumber: "FS-1001",
		Barcodes:           []string{"1001;ART-1;B7;12,5", "4006381333931", "1001;ART-2;B8;2.5"},
		EmailSent:          models.EmailPending,
		CreatedAt:          time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
	}
}

func sampleReport() *Report {
	return New(sampleSession(), time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
}

func TestCSV_Format(t *testing.T) {
	out, err := sampleReport().CSV()
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	expected := []string{
		"Index;Ordernumber;Articlenumber;Batchnumber;Weight;RawData",
		`1;1001;ART-1;B7;12.5;"1001;ART-1;B7;12,5"`,
		"2;;;;0;4006381333931",
		`3;1001;ART-2;B8;2.5;"1001;ART-2;B8;2.5"`,
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expected), len(lines), out)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Fatalf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestCSV_EmptySession(t *testing.T) {
	s := sampleSession()
	s.Barcodes = nil
	out, err := New(s, time.Now()).CSV()
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if string(out) != "Index;Ordernumber;Articlenumber;Batchnumber;Weight;RawData\n" {
		t.Fatalf("unexpected csv for empty session: %q", out)
	}
}

func TestNamesAndSubject(t *testing.T) {
	r := sampleReport()
	if r.Subject() != "Leveransrapport - FS-1001" {
		t.Fatalf("unexpected subject %q", r.Subject())
	}
	if r.CSVFilename() != "streckkoder-FS-1001.csv" {
		t.Fatalf("unexpected csv filename %q", r.CSVFilename())
	}

	s := sampleSession()
	s.DeliveryNoteNumber = `a/b"c`
	if got := New(s, time.Now()).PDFFilename(); got != "leveransrapport-a_b_c.pdf" {
		t.Fatalf("unsafe characters kept in filename: %q", got)
	}
}

func TestHTML_ContainsReportFields(t *testing.T) {
	html, err := sampleReport().HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{
		"FS-1001",
		"Följesedelnummer",
		"2024-03-01",
		"09:30:00", // 08:30 UTC in Stockholm (CET)
		"Order 1001",
		"15.0 kg",
		"4006381333931",
		"Rapport skapad: 2024-03-01 10:00:00",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("html missing %q", want)
		}
	}

	text := PlainText(html)
	if strings.Contains(text, "<") || !strings.Contains(text, "FS-1001") {
		t.Fatalf("plain text not stripped: %q", text)
	}
}

func TestHTML_EscapesCodes(t *testing.T) {
	s := sampleSession()
	s.Barcodes = []string{"<script>alert(1)</script>"}
	html, err := New(s, time.Now()).HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("barcode content was not escaped")
	}
}

func TestPDF(t *testing.T) {
	out, err := sampleReport().PDF()
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestXLSX(t *testing.T) {
	out, err := sampleReport().XLSX()
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(codesSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 || rows[0][0] != "Index" || rows[2][5] != "4006381333931" {
		t.Fatalf("unexpected codes sheet %v", rows)
	}

	orders, _ := f.GetRows(ordersSheet)
	if len(orders) != 3 || orders[1][0] != "1001" || orders[2][0] != "Total" {
		t.Fatalf("unexpected orders sheet %v", orders)
	}
}

func TestSetRow_ReportsErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, "Sheet1", 0, "x"); err == nil {
		t.Fatalf("expected error for row 0")
	}
	if err := setRow(f, "Missing", 1, "x"); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
	if err := setRow(f, "Sheet1", 2, "a", 3, 1.5); err != nil {
		t.Fatalf("setRow: %v", err)
	}
	if v, _ := f.GetCellValue("Sheet1", "C2"); v != "1.5" {
		t.Fatalf("expected C2 = 1.5, got %q", v)
	}
}
