package models

import "time"

// ScanSession binds one delivery note number to the codes scanned for it
type ScanSession struct {
	ID                 int         `json:"id"`
	DeliveryNoteNumber string      `json:"deliveryNoteNumber"`
	Barcodes           []string    `json:"barcodes"`
	EmailSent          EmailStatus `json:"emailSent"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// Clone returns a copy that shares no memory with s
func (s *ScanSession) Clone() *ScanSession {
	c := *s
	c.Barcodes = append(make([]string, 0, len(s.Barcodes)), s.Barcodes...)
	return &c
}

// ScanSessionUpdate is a partial update; nil fields are left unchanged
type ScanSessionUpdate struct {
	Barcodes  *[]string
	EmailSent *EmailStatus
}

// CreateScanSessionRequest represents the request body for creating a scan session
type CreateScanSessionRequest struct {
	DeliveryNoteNumber string   `json:"deliveryNoteNumber" validate:"required,max=100"`
	Barcodes           []string `json:"barcodes" validate:"max=5000,dive,required,max=1000"`
}

// UpdateScanSessionRequest represents the request body for PATCH; omitted fields stay as they are
type UpdateScanSessionRequest struct {
	Barcodes  *[]string `json:"barcodes" validate:"omitempty,max=5000,dive,required,max=1000"`
	EmailSent *string   `json:"emailSent" validate:"omitempty,oneof=pending sent failed"`
}

// AddBarcodeRequest adds one code, either raw or from the four structured fields
type AddBarcodeRequest struct {
	Code          string `json:"code" validate:"required_without=OrderNumber,max=1000"`
	OrderNumber   string `json:"orderNumber" validate:"required_without=Code,excludes=;"`
	ArticleNumber string `json:"articleNumber" validate:"required_with=OrderNumber,excludes=;"`
	BatchNumber   string `json:"batchNumber" validate:"required_with=OrderNumber,excludes=;"`
	Weight        string `json:"weight" validate:"excludes=;"`
}

// MessageResponse is the generic {"message": ...} body used across the API
type MessageResponse struct {
	Message string `json:"message"`
}
