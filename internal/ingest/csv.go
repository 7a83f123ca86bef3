// Package ingest is the tabular-file collaborator: it tokenizes CSV rows
// into raw records and writes annotated results back out. No normalization
// happens here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mahiyapatil/smart-financial-parser/internal/common"
	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

// Header aliases, lowercased. Real exports disagree on merchant column
// naming; category is optional and may be missing entirely.
var fieldAliases = map[string]string{
	"date":          "date",
	"merchant":      "merchant",
	"merchant name": "merchant",
	"merchant_name": "merchant",
	"amount":        "amount",
	"category":      "category",
}

// outputColumns is the fixed export order.
var outputColumns = []string{
	"date", "normalized_merchant", "merchant_name",
	"amount", "currency", "category",
	"is_refund", "is_anomaly", "anomaly_reason",
}

// ReadRecords tokenizes a CSV stream into raw records. The first row must
// be a header containing at least date, merchant and amount columns (any
// alias, any case); rows shorter than the header are padded with empty
// fields rather than rejected.
func ReadRecords(r io.Reader) ([]model.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, common.ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if field, ok := fieldAliases[key]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}
	for _, required := range []string{"date", "merchant", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", common.ErrInvalidConfig, required)
		}
	}

	var records []model.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+2, err)
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}
		records = append(records, model.RawRecord{
			Date:         field("date"),
			MerchantName: field("merchant"),
			Amount:       field("amount"),
			Category:     field("category"),
		})
	}

	if len(records) == 0 {
		return nil, common.ErrNoRecords
	}
	return records, nil
}

// WriteRecords exports annotated transactions with the fixed column order.
func WriteRecords(w io.Writer, txns []*model.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(outputColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, t := range txns {
		row := []string{
			t.Date.Format(time.RFC3339),
			t.NormalizedMerchant,
			t.MerchantName,
			t.Amount.StringFixed(2),
			t.Currency,
			t.Category,
			strconv.FormatBool(t.IsRefund),
			strconv.FormatBool(t.IsAnomaly()),
			t.AnomalyReason(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
