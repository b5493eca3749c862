package core

import (
	"fmt"
	"sort"
	"time"
)

// NextEntry computes the ledger entry for applying delta to the current
// quantity. It is the single construction path for history entries, so
// every entry satisfies QuantityAfter = QuantityBefore + Change.
//
// A delta that would leave the quantity negative returns a
// *NegativeStockError and no entry; callers must reject the mutation
// before writing anything.
func NextEntry(id string, entryType EntryType, current, delta int64, comment string, now time.Time) (HistoryEntry, error) {
	after := current + delta
	if after < 0 {
		return HistoryEntry{}, &NegativeStockError{Available: current, Requested: -delta}
	}
	return HistoryEntry{
		ID:             id,
		Type:           entryType,
		Change:         delta,
		QuantityBefore: current,
		QuantityAfter:  after,
		Comment:        comment,
		Timestamp:      now,
	}, nil
}

// ReplayQuantity recomputes an item's quantity from an empty state by
// summing the Change of every ledger entry.
func ReplayQuantity(entries []HistoryEntry) int64 {
	var qty int64
	for _, e := range entries {
		qty += e.Change
	}
	return qty
}

// VerifyItemLedger checks the reconciliation invariants of an item
// against its embedded ledger:
//
//   - each entry satisfies QuantityAfter = QuantityBefore + Change,
//   - replaying all changes from zero reproduces the stored quantity,
//   - the stored quantity equals the QuantityAfter of the most recent
//     entry (by timestamp, entry id breaking ties).
func VerifyItemLedger(item *Item) error {
	for _, e := range item.History {
		if e.QuantityAfter != e.QuantityBefore+e.Change {
			return fmt.Errorf("ledger entry %s: after=%d, want before(%d)+change(%d)",
				e.ID, e.QuantityAfter, e.QuantityBefore, e.Change)
		}
	}
	if replayed := ReplayQuantity(item.History); replayed != item.Quantity {
		return fmt.Errorf("item %s: replayed quantity %d does not match stored quantity %d",
			item.ID, replayed, item.Quantity)
	}
	if len(item.History) > 0 {
		latest := item.History[0]
		for _, e := range item.History[1:] {
			if e.Timestamp.After(latest.Timestamp) ||
				(e.Timestamp.Equal(latest.Timestamp) && e.ID > latest.ID) {
				latest = e
			}
		}
		if latest.QuantityAfter != item.Quantity {
			return fmt.Errorf("item %s: stored quantity %d does not match latest entry's after=%d",
				item.ID, item.Quantity, latest.QuantityAfter)
		}
	}
	return nil
}

// SortEntriesDesc orders ledger entries most recent first. Equal
// timestamps are broken by entry id ascending, so the order is
// deterministic regardless of input order.
func SortEntriesDesc(entries []HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}
