package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjleezdev/theappez/internal/core"
)

func buildTestInventory() ([]core.Warehouse, []core.Item) {
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.Local)
	entry := func(id string, t core.EntryType, before, change int64, offset time.Duration) core.HistoryEntry {
		return core.HistoryEntry{
			ID:             id,
			Type:           t,
			Change:         change,
			QuantityBefore: before,
			QuantityAfter:  before + change,
			Timestamp:      base.Add(offset),
		}
	}

	warehouses := []core.Warehouse{
		{ID: "w1", Name: "Main"},
		{ID: "w2", Name: "Overflow"},
	}
	items := []core.Item{
		{
			ID: "i1", WarehouseID: "w1", Name: "Bolts", Quantity: 12,
			History: []core.HistoryEntry{
				entry("a1", core.EntryCreateItem, 0, 10, 0),
				entry("a2", core.EntryAddStock, 10, 5, 24*time.Hour),
				entry("a3", core.EntryConsumeStock, 15, -3, 48*time.Hour),
			},
		},
		{
			ID: "i2", WarehouseID: "w2", Name: "Nuts", Quantity: 7,
			History: []core.HistoryEntry{
				entry("b1", core.EntryCreateItem, 0, 5, 12*time.Hour),
				entry("b2", core.EntryAddStock, 5, 2, 72*time.Hour),
			},
		},
	}
	return warehouses, items
}

func TestFlatten_JoinsAndSorts(t *testing.T) {
	warehouses, items := buildTestInventory()

	flat := core.Flatten(warehouses, items)
	require.Len(t, flat, 5)

	// Newest first across both items.
	assert.Equal(t, "b2", flat[0].ID)
	assert.Equal(t, "a3", flat[1].ID)
	assert.Equal(t, "a2", flat[2].ID)
	assert.Equal(t, "b1", flat[3].ID)
	assert.Equal(t, "a1", flat[4].ID)

	// Denormalized identity travels with each entry.
	assert.Equal(t, "Overflow", flat[0].WarehouseName)
	assert.Equal(t, "Nuts", flat[0].ItemName)
	assert.Equal(t, "Main", flat[4].WarehouseName)
	assert.Equal(t, "Bolts", flat[4].ItemName)
}

func TestFlatten_SkipsItemWithMissingWarehouse(t *testing.T) {
	warehouses, items := buildTestInventory()
	items = append(items, core.Item{
		ID: "orphan", WarehouseID: "missing", Name: "Ghost",
		History: []core.HistoryEntry{{ID: "z1", Timestamp: time.Now()}},
	})

	flat := core.Flatten(warehouses, items)
	for _, e := range flat {
		assert.NotEqual(t, "orphan", e.ItemID)
	}
}

func TestSortFlattenedDesc_TieBreaksOnEntryID(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []core.FlattenedHistoryEntry{
		{HistoryEntry: core.HistoryEntry{ID: "b", Timestamp: ts}},
		{HistoryEntry: core.HistoryEntry{ID: "a", Timestamp: ts}},
	}
	core.SortFlattenedDesc(entries)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)
}

func TestApplyFilter_WarehouseAndItem(t *testing.T) {
	warehouses, items := buildTestInventory()
	flat := core.Flatten(warehouses, items)

	byWarehouse, err := core.ApplyFilter(flat, core.ReportFilter{WarehouseID: "w1"})
	require.NoError(t, err)
	require.Len(t, byWarehouse, 3)
	for _, e := range byWarehouse {
		assert.Equal(t, "w1", e.WarehouseID)
	}

	byItem, err := core.ApplyFilter(flat, core.ReportFilter{ItemID: "i2"})
	require.NoError(t, err)
	require.Len(t, byItem, 2)
	for _, e := range byItem {
		assert.Equal(t, "i2", e.ItemID)
	}

	// Item filter on top of the warehouse filter narrows further.
	combined, err := core.ApplyFilter(flat, core.ReportFilter{WarehouseID: "w1", ItemID: "i1"})
	require.NoError(t, err)
	require.Len(t, combined, 3)
	for _, e := range combined {
		assert.Equal(t, "i1", e.ItemID)
	}
}

func TestApplyFilter_DateBoundsAreInclusiveDays(t *testing.T) {
	day := time.Date(2026, 7, 2, 0, 0, 0, 0, time.Local)
	entries := []core.FlattenedHistoryEntry{
		{HistoryEntry: core.HistoryEntry{ID: "before", Timestamp: day.Add(-time.Second)}},
		{HistoryEntry: core.HistoryEntry{ID: "start", Timestamp: day}},
		{HistoryEntry: core.HistoryEntry{ID: "lateEnd", Timestamp: day.Add(23*time.Hour + 59*time.Minute)}},
		{HistoryEntry: core.HistoryEntry{ID: "after", Timestamp: day.Add(24*time.Hour + time.Second)}},
	}

	filtered, err := core.ApplyFilter(entries, core.ReportFilter{
		StartDate: "2026-07-02",
		EndDate:   "2026-07-02",
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(filtered))
	for _, e := range filtered {
		ids = append(ids, e.ID)
	}
	// The end bound covers the entire calendar day; 23:59 is in, the next
	// day's first second is out.
	assert.Equal(t, []string{"start", "lateEnd"}, ids)
}

func TestApplyFilter_MalformedDateIsAnError(t *testing.T) {
	_, err := core.ApplyFilter(nil, core.ReportFilter{StartDate: "07/02/2026"})
	assert.Error(t, err)

	_, err = core.ApplyFilter(nil, core.ReportFilter{EndDate: "not-a-date"})
	assert.Error(t, err)
}

func TestApplyFilter_PreservesOrder(t *testing.T) {
	warehouses, items := buildTestInventory()
	flat := core.Flatten(warehouses, items)

	filtered, err := core.ApplyFilter(flat, core.ReportFilter{WarehouseID: "w1"})
	require.NoError(t, err)
	for i := 1; i < len(filtered); i++ {
		assert.False(t, filtered[i].Timestamp.After(filtered[i-1].Timestamp))
	}
}

func TestWithWarehouse_ClearsItemFilter(t *testing.T) {
	f := core.ReportFilter{WarehouseID: "w1", ItemID: "i1", StartDate: "2026-07-01"}
	g := f.WithWarehouse("w2")
	assert.Equal(t, "w2", g.WarehouseID)
	assert.Empty(t, g.ItemID)
	assert.Equal(t, "2026-07-01", g.StartDate)
}

func TestReportTitle(t *testing.T) {
	tests := []struct {
		name          string
		filter        core.ReportFilter
		warehouseName string
		itemName      string
		want          string
	}{
		{
			name:   "no filters",
			filter: core.ReportFilter{},
			want:   "All transactions",
		},
		{
			name:          "warehouse only",
			filter:        core.ReportFilter{WarehouseID: "w1"},
			warehouseName: "Main",
			want:          "Transactions for Main",
		},
		{
			name:          "warehouse and item",
			filter:        core.ReportFilter{WarehouseID: "w1", ItemID: "i1"},
			warehouseName: "Main",
			itemName:      "Bolts",
			want:          "Transactions for Bolts in Main",
		},
		{
			name:     "item only",
			filter:   core.ReportFilter{ItemID: "i1"},
			itemName: "Bolts",
			want:     "Transactions for Bolts",
		},
		{
			name:   "date range",
			filter: core.ReportFilter{StartDate: "2026-07-01", EndDate: "2026-07-31"},
			want:   "All transactions from 2026-07-01 to 2026-07-31",
		},
		{
			name:   "start only",
			filter: core.ReportFilter{StartDate: "2026-07-01"},
			want:   "All transactions from 2026-07-01",
		},
		{
			name:          "warehouse with end date",
			filter:        core.ReportFilter{WarehouseID: "w1", EndDate: "2026-07-31"},
			warehouseName: "Main",
			want:          "Transactions for Main until 2026-07-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ReportTitle(tt.filter, tt.warehouseName, tt.itemName)
			assert.Equal(t, tt.want, got)
		})
	}
}
