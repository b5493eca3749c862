package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/enjleezdev/theappez/internal/core"
)

func TestWriteTransactionReport(t *testing.T) {
	ts := time.Date(2026, 7, 10, 9, 30, 0, 0, time.UTC)
	report := &core.TransactionReport{
		Title: "Transactions for Main",
		Entries: []core.FlattenedHistoryEntry{
			{
				HistoryEntry: core.HistoryEntry{
					ID: "a2", Type: core.EntryConsumeStock, Change: -3,
					QuantityBefore: 15, QuantityAfter: 12,
					Comment: "issued", Timestamp: ts,
				},
				ItemName: "Bolts", WarehouseName: "Main",
			},
			{
				HistoryEntry: core.HistoryEntry{
					ID: "a1", Type: core.EntryAddStock, Change: 5,
					QuantityBefore: 10, QuantityAfter: 15,
					Timestamp: ts.Add(-time.Hour),
				},
				ItemName: "Bolts", WarehouseName: "Main",
			},
		},
		GeneratedAt: ts,
	}

	buf, err := WriteTransactionReport(report)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Comment", rows[0][7])

	// Row order follows the report (newest first).
	assert.Equal(t, "Main", rows[1][1])
	assert.Equal(t, "Bolts", rows[1][2])
	assert.Equal(t, "CONSUME_STOCK", rows[1][3])
	assert.Equal(t, "-3", rows[1][4])
	assert.Equal(t, "issued", rows[1][7])
	assert.Equal(t, "ADD_STOCK", rows[2][3])
}

func TestWriteTransactionReport_Empty(t *testing.T) {
	report := &core.TransactionReport{Title: "All transactions", GeneratedAt: time.Now()}

	buf, err := WriteTransactionReport(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
