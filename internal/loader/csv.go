// Package loader reads purchase-order and sales-order line exports from CSV
// files. Rows are keyed by header name; missing columns read as empty strings
// rather than errors, since downstream engines treat absent values as an
// expected condition.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/example/etaflow/internal/model"
)

// Column names expected in the exports. Matching is case-insensitive.
const (
	colPOID    = "po_id"
	colSOID    = "so_id"
	colSKU     = "sku"
	colETDNote = "etd_note"

	colEmail        = "email"
	colQtyOrdered   = "qty_ordered"
	colHoldingQty   = "holding_qty"
	colDispatchQty  = "dispatch_qty"
	colLineNote     = "line_note"
	colOrderETA     = "order_eta"
	colOrderCreated = "order_created"
)

// LoadPOLines reads a purchase-order line export.
func LoadPOLines(path string) ([]model.POLine, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	lines := make([]model.POLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, model.POLine{
			POID:    row[colPOID],
			SKU:     row[colSKU],
			Comment: row[colETDNote],
		})
	}
	return lines, nil
}

// LoadSOLines reads a sales-order line export.
func LoadSOLines(path string) ([]model.OrderLine, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	lines := make([]model.OrderLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, model.OrderLine{
			OrderID:      row[colSOID],
			SKU:          row[colSKU],
			Email:        row[colEmail],
			QtyOrdered:   row[colQtyOrdered],
			HoldingQty:   row[colHoldingQty],
			DispatchQty:  row[colDispatchQty],
			LineNote:     row[colLineNote],
			OrderETA:     row[colOrderETA],
			OrderCreated: row[colOrderCreated],
		})
	}
	return lines, nil
}

// readRows loads a CSV file into header-keyed rows. Headers are lowercased
// and trimmed, cells are trimmed, and fully empty rows are skipped.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: file is empty", path)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []map[string]string
	for _, record := range records[1:] {
		if isEmpty(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func isEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
