package core

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ReportFilter narrows the flattened transaction list. Zero values mean
// "no filter". Dates are YYYY-MM-DD and bound entire calendar days in
// local time, both ends inclusive.
type ReportFilter struct {
	WarehouseID string `json:"warehouse_id,omitempty"`
	ItemID      string `json:"item_id,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// WithWarehouse selects a warehouse scope and clears any item filter: an
// item filter is only meaningful within the warehouse (or "all") scope it
// was chosen under.
func (f ReportFilter) WithWarehouse(warehouseID string) ReportFilter {
	f.WarehouseID = warehouseID
	f.ItemID = ""
	return f
}

// Flatten joins every item's ledger with its parent warehouse into one
// transaction list. Items whose parent warehouse is not in the given set
// are silently excluded; that is a defined data-inconsistency edge case,
// not an error. The result is in canonical order: timestamp descending,
// entry id ascending on ties.
func Flatten(warehouses []Warehouse, items []Item) []FlattenedHistoryEntry {
	byID := make(map[string]Warehouse, len(warehouses))
	for _, w := range warehouses {
		byID[w.ID] = w
	}

	var out []FlattenedHistoryEntry
	for _, item := range items {
		wh, ok := byID[item.WarehouseID]
		if !ok {
			continue
		}
		for _, e := range item.History {
			out = append(out, FlattenedHistoryEntry{
				HistoryEntry:  e,
				ItemID:        item.ID,
				ItemName:      item.Name,
				WarehouseID:   wh.ID,
				WarehouseName: wh.Name,
			})
		}
	}
	SortFlattenedDesc(out)
	return out
}

// SortFlattenedDesc orders flattened entries most recent first, breaking
// equal timestamps by entry id ascending.
func SortFlattenedDesc(entries []FlattenedHistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}

// ApplyFilter applies the filter stages in sequence: warehouse, item,
// start date, end date. The input order is preserved. A malformed date
// is a validation error and filters nothing.
func ApplyFilter(entries []FlattenedHistoryEntry, f ReportFilter) ([]FlattenedHistoryEntry, error) {
	startOK, start, err := parseDayBound(f.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", f.StartDate, err)
	}
	endOK, end, err := parseDayBound(f.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", f.EndDate, err)
	}
	// End bound covers the whole calendar day.
	endExclusive := end.AddDate(0, 0, 1)

	out := make([]FlattenedHistoryEntry, 0, len(entries))
	for _, e := range entries {
		if f.WarehouseID != "" && e.WarehouseID != f.WarehouseID {
			continue
		}
		if f.ItemID != "" && e.ItemID != f.ItemID {
			continue
		}
		if startOK && e.Timestamp.Before(start) {
			continue
		}
		if endOK && !e.Timestamp.Before(endExclusive) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// parseDayBound parses a YYYY-MM-DD date as local midnight. An empty
// string means the bound is unset.
func parseDayBound(date string) (bool, time.Time, error) {
	if date == "" {
		return false, time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return false, time.Time{}, err
	}
	return true, t, nil
}

// ReportTitle derives the display label for a filter combination. The
// names are the resolved warehouse/item names for the filter's ids, empty
// when the corresponding filter is unset.
func ReportTitle(f ReportFilter, warehouseName, itemName string) string {
	var b strings.Builder
	switch {
	case f.WarehouseID != "" && f.ItemID != "":
		fmt.Fprintf(&b, "Transactions for %s in %s", itemName, warehouseName)
	case f.WarehouseID != "":
		fmt.Fprintf(&b, "Transactions for %s", warehouseName)
	case f.ItemID != "":
		fmt.Fprintf(&b, "Transactions for %s", itemName)
	default:
		b.WriteString("All transactions")
	}
	switch {
	case f.StartDate != "" && f.EndDate != "":
		fmt.Fprintf(&b, " from %s to %s", f.StartDate, f.EndDate)
	case f.StartDate != "":
		fmt.Fprintf(&b, " from %s", f.StartDate)
	case f.EndDate != "":
		fmt.Fprintf(&b, " until %s", f.EndDate)
	}
	return b.String()
}
