package report

import (
	"bytes"
	"html/template"

	"github.com/bouvin87/BarcodeBuddy/internal/qrcode"
)

var emailTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"formatWeight": qrcode.FormatWeight,
}).Parse(`<!DOCTYPE html>
<html lang="sv">
<head><meta charset="utf-8"><title>Leveransrapport: {{.DeliveryNoteNumber}}</title></head>
<body style="background-color:#f3f4f6;font-family:Arial,sans-serif;margin:0;padding:24px;">
<div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:8px;">
<div style="background:#1f2937;color:#ffffff;padding:16px 24px;border-radius:8px 8px 0 0;">
<p style="font-size:20px;font-weight:bold;margin:0;">BarcodeBuddy</p>
<p style="font-size:13px;margin:4px 0 0;">Leveransrapport</p>
</div>
<div style="padding:24px;">
<h1 style="font-size:18px;color:#111827;">Ny leveransrapport</h1>
<p><strong>Följesedelnummer:</strong> {{.DeliveryNoteNumber}}</p>
<p><strong>Skanningsdatum:</strong> {{.ScanDate}}</p>
<p><strong>Skanningstid:</strong> {{.ScanTime}}</p>
<hr style="margin:16px 0;border-color:#d1d5db;">
{{- if .Summary.Orders}}
<h3 style="font-size:14px;color:#111827;">Ordrar ({{len .Summary.Orders}})</h3>
{{- range .Summary.Orders}}
<table style="width:100%;border-collapse:collapse;font-size:13px;margin-bottom:12px;">
<tr><th colspan="3" style="text-align:left;background:#e5e7eb;padding:4px;">Order {{.OrderNumber}} ({{len .Items}} st, {{formatWeight .TotalWeight}})</th></tr>
<tr><th style="text-align:left;padding:4px;">Artikel</th><th style="text-align:left;padding:4px;">Batch</th><th style="text-align:right;padding:4px;">Vikt</th></tr>
{{- range .Items}}
<tr><td style="padding:4px;">{{.ArticleNumber}}</td><td style="padding:4px;">{{.BatchNumber}}</td><td style="text-align:right;padding:4px;">{{formatWeight .Weight}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- end}}
<h3 style="font-size:14px;color:#111827;">Streckkoder ({{.Summary.TotalCount}})</h3>
<ul style="font-size:13px;line-height:1.6;padding-left:16px;">
{{- range .Barcodes}}
<li style="font-family:monospace;color:#374151;">{{.}}</li>
{{- end}}
</ul>
<p><strong>Antal streckkoder:</strong> {{.Summary.TotalCount}}</p>
<p><strong>Total vikt:</strong> {{.Summary.TotalWeightFormatted}}</p>
<p style="font-size:12px;color:#6b7280;">Rapport skapad: {{.GeneratedStamp}}</p>
</div>
<div style="border-top:1px solid #e5e7eb;padding:16px;text-align:center;">
<p style="font-size:12px;color:#9ca3af;">Det här meddelandet skickades automatiskt av <strong>BarcodeBuddy</strong>.</p>
</div>
</div>
</body>
</html>
`))

// HTML renders the email body
func (r *Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
