package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

var csvHeader = []string{"Index", "Ordernumber", "Articlenumber", "Batchnumber", "Weight", "RawData"}

// CSV renders one ;-separated row per scanned code
func (r *Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range r.Rows() {
		record := []string{
			strconv.Itoa(row.Index),
			row.OrderNumber,
			row.ArticleNumber,
			row.BatchNumber,
			formatWeightValue(row.Weight),
			row.RawData,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
