// Package export renders reports into downloadable spreadsheet files.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/enjleezdev/theappez/internal/core"
)

const transactionsSheet = "Transactions"

// WriteTransactionReport renders a transaction report into an xlsx
// workbook. Rows keep the report's ordering (newest first).
func WriteTransactionReport(report *core.TransactionReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", transactionsSheet)

	header := []any{"Date", "Warehouse", "Item", "Type", "Change", "Before", "After", "Comment"}
	if err := f.SetSheetRow(transactionsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, e := range report.Entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell for row %d: %w", i+2, err)
		}
		row := []any{
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.WarehouseName,
			e.ItemName,
			string(e.Type),
			e.Change,
			e.QuantityBefore,
			e.QuantityAfter,
			e.Comment,
		}
		if err := f.SetSheetRow(transactionsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// Title goes into the document properties rather than a merged header
	// row, so the sheet stays machine-readable.
	if err := f.SetDocProps(&excelize.DocProperties{Title: report.Title}); err != nil {
		return nil, fmt.Errorf("failed to set document title: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}
