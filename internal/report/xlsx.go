package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	codesSheet  = "Streckkoder"
	ordersSheet = "Ordrar"
)

// XLSX renders the codes sheet (same columns as the CSV) and an order summary sheet
func (r *Report) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", codesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ordersSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := setRow(f, codesSheet, 1, header...); err != nil {
		return nil, err
	}
	for i, row := range r.Rows() {
		err := setRow(f, codesSheet, i+2, row.Index, row.OrderNumber, row.ArticleNumber, row.BatchNumber, row.Weight, row.RawData)
		if err != nil {
			return nil, err
		}
	}

	if err := setRow(f, ordersSheet, 1, "Ordernumber", "Count", "Weight"); err != nil {
		return nil, err
	}
	rowNo := 2
	for _, g := range r.Summary.Orders {
		if err := setRow(f, ordersSheet, rowNo, g.OrderNumber, len(g.Items), g.TotalWeight); err != nil {
			return nil, err
		}
		rowNo++
	}
	if err := setRow(f, ordersSheet, rowNo, "Total", r.Summary.StructuredCount, r.Summary.TotalWeight); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setRow writes values into consecutive cells of row, starting at column A
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("%s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
