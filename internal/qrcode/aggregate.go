package qrcode

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderGroup holds the structured codes of one order, in scan order.
type OrderGroup struct {
	OrderNumber string    `json:"orderNumber"`
	Items       []Payload `json:"items"`
	TotalWeight float64   `json:"totalWeight"`
}

// Summary is the aggregated view of a list of scanned codes.
type Summary struct {
	TotalCount           int          `json:"totalCount"`
	StructuredCount      int          `json:"structuredCount"`
	UnstructuredCount    int          `json:"unstructuredCount"`
	TotalWeight          float64      `json:"totalWeight"`
	TotalWeightFormatted string       `json:"totalWeightFormatted"`
	Orders               []OrderGroup `json:"orders"`
	Unstructured         []string     `json:"unstructured"`
}

// TotalWeight sums the weight of every structured code. Plain barcodes add 0.
// The sum is exact, so the result does not depend on the order of codes.
func TotalWeight(codes []string) float64 {
	sum := decimal.Zero
	for _, code := range codes {
		if p, ok := Parse(code); ok {
			sum = sum.Add(decimal.NewFromFloat(p.Weight))
		}
	}
	return sum.InexactFloat64()
}

// GroupByOrder maps each order number to its structured codes in scan order.
// Plain barcodes are left out.
func GroupByOrder(codes []string) map[string][]Payload {
	groups := make(map[string][]Payload)
	for _, code := range codes {
		p, ok := Parse(code)
		if !ok {
			continue
		}
		groups[p.OrderNumber] = append(groups[p.OrderNumber], p)
	}
	return groups
}

// OrderedGroups is GroupByOrder with groups listed in first-seen order and a
// weight subtotal per group.
func OrderedGroups(codes []string) []OrderGroup {
	index := make(map[string]int)
	var groups []OrderGroup
	subtotals := []decimal.Decimal{}

	for _, code := range codes {
		p, ok := Parse(code)
		if !ok {
			continue
		}
		i, seen := index[p.OrderNumber]
		if !seen {
			i = len(groups)
			index[p.OrderNumber] = i
			groups = append(groups, OrderGroup{OrderNumber: p.OrderNumber})
			subtotals = append(subtotals, decimal.Zero)
		}
		groups[i].Items = append(groups[i].Items, p)
		subtotals[i] = subtotals[i].Add(decimal.NewFromFloat(p.Weight))
	}

	for i := range groups {
		groups[i].TotalWeight = subtotals[i].InexactFloat64()
	}
	return groups
}

// FormatWeight renders kg with one decimal, e.g. "1500.0 kg".
func FormatWeight(kg float64) string {
	return fmt.Sprintf("%.1f kg", kg)
}

// Summarize computes counts, weights and order groups for codes.
func Summarize(codes []string) Summary {
	s := Summary{
		TotalCount:   len(codes),
		Orders:       OrderedGroups(codes),
		Unstructured: []string{},
	}
	if s.Orders == nil {
		s.Orders = []OrderGroup{}
	}

	for _, code := range codes {
		if IsStructured(code) {
			s.StructuredCount++
		} else {
			s.UnstructuredCount++
			s.Unstructured = append(s.Unstructured, code)
		}
	}

	s.TotalWeight = TotalWeight(codes)
	s.TotalWeightFormatted = FormatWeight(s.TotalWeight)
	return s
}

// JoinStructured builds a structured code from manually typed fields.
// A blank weight becomes "0".
func JoinStructured(order, article, batch, weight string) string {
	if strings.TrimSpace(weight) == "" {
		weight = "0"
	}
	return strings.Join([]string{order, article, batch, weight}, Delimiter)
}
