package qrcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Delimiter separates the fields of a structured order code.
const Delimiter = ";"

// structuredParts is the number of fields in a structured code:
// order number, article number, batch number, weight.
const structuredParts = 4

// leadingNumber matches the numeric prefix of a weight field ("12.5kg" -> "12.5").
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// Payload is the structured content of an order QR code.
type Payload struct {
	OrderNumber   string  `json:"orderNumber"`
	ArticleNumber string  `json:"articleNumber"`
	BatchNumber   string  `json:"batchNumber"`
	Weight        float64 `json:"weight"` // kg
	RawData       string  `json:"rawData"`
}

// Parse classifies raw as a structured order code. The second return value is
// false for plain barcodes, which is a normal outcome and not an error.
// Parse never panics.
func Parse(raw string) (p Payload, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p, ok = Payload{}, false
		}
	}()

	parts := strings.Split(raw, Delimiter)
	if len(parts) != structuredParts {
		return Payload{}, false
	}

	order := strings.TrimSpace(parts[0])
	article := strings.TrimSpace(parts[1])
	batch := strings.TrimSpace(parts[2])
	if order == "" || article == "" || batch == "" {
		return Payload{}, false
	}

	return Payload{
		OrderNumber:   order,
		ArticleNumber: article,
		BatchNumber:   batch,
		Weight:        ParseWeight(parts[3]),
		RawData:       raw,
	}, true
}

// IsStructured reports whether raw parses as a structured order code.
func IsStructured(raw string) bool {
	_, ok := Parse(raw)
	return ok
}

// ParseWeight reads a weight in kg, accepting "," as decimal separator.
// Only the leading numeric part is used; anything unparsable, negative or
// non-finite yields 0.
//
// TODO: add a strict mode that rejects malformed weights instead of zeroing them.
func ParseWeight(s string) float64 {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)

	num := leadingNumber.FindString(s)
	if num == "" {
		return 0
	}

	w, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsInf(w, 0) || math.IsNaN(w) || w < 0 {
		return 0
	}
	return w
}
