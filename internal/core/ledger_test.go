package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjleezdev/theappez/internal/core"
)

func TestNextEntry_AppliesDelta(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	entry, err := core.NextEntry("e1", core.EntryAddStock, 10, 5, "restock", now)
	require.NoError(t, err)

	assert.Equal(t, core.EntryAddStock, entry.Type)
	assert.Equal(t, int64(5), entry.Change)
	assert.Equal(t, int64(10), entry.QuantityBefore)
	assert.Equal(t, int64(15), entry.QuantityAfter)
	assert.Equal(t, "restock", entry.Comment)
	assert.Equal(t, now, entry.Timestamp)
}

func TestNextEntry_RejectsNegativeResult(t *testing.T) {
	_, err := core.NextEntry("e1", core.EntryConsumeStock, 3, -5, "", time.Now())
	require.Error(t, err)

	var negative *core.NegativeStockError
	require.ErrorAs(t, err, &negative)
	assert.Equal(t, int64(3), negative.Available)
	assert.Equal(t, int64(5), negative.Requested)
	assert.Contains(t, negative.Error(), "only 3 available")
}

func TestNextEntry_AllowsDrainToZero(t *testing.T) {
	entry, err := core.NextEntry("e1", core.EntryConsumeStock, 5, -5, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), entry.QuantityAfter)
}

func TestReplayQuantity(t *testing.T) {
	entries := []core.HistoryEntry{
		{Change: 10},
		{Change: -3},
		{Change: 7},
		{Change: -4},
	}
	assert.Equal(t, int64(10), core.ReplayQuantity(entries))
	assert.Equal(t, int64(0), core.ReplayQuantity(nil))
}

func TestVerifyItemLedger(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	entry := func(id string, before, change int64, offset time.Duration) core.HistoryEntry {
		return core.HistoryEntry{
			ID:             id,
			Change:         change,
			QuantityBefore: before,
			QuantityAfter:  before + change,
			Timestamp:      base.Add(offset),
		}
	}

	t.Run("consistent ledger passes", func(t *testing.T) {
		item := &core.Item{
			ID:       "i1",
			Quantity: 12,
			History: []core.HistoryEntry{
				entry("a", 0, 10, 0),
				entry("b", 10, -3, time.Hour),
				entry("c", 7, 5, 2*time.Hour),
			},
		}
		assert.NoError(t, core.VerifyItemLedger(item))
	})

	t.Run("broken arithmetic fails", func(t *testing.T) {
		bad := entry("a", 0, 10, 0)
		bad.QuantityAfter = 11
		item := &core.Item{ID: "i1", Quantity: 11, History: []core.HistoryEntry{bad}}
		assert.Error(t, core.VerifyItemLedger(item))
	})

	t.Run("replay mismatch fails", func(t *testing.T) {
		item := &core.Item{
			ID:       "i1",
			Quantity: 99,
			History:  []core.HistoryEntry{entry("a", 0, 10, 0)},
		}
		assert.Error(t, core.VerifyItemLedger(item))
	})

	t.Run("empty ledger with zero quantity passes", func(t *testing.T) {
		item := &core.Item{ID: "i1", Quantity: 0}
		assert.NoError(t, core.VerifyItemLedger(item))
	})
}

func TestSortEntriesDesc_TieBreaksOnID(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []core.HistoryEntry{
		{ID: "c", Timestamp: ts},
		{ID: "a", Timestamp: ts.Add(time.Minute)},
		{ID: "b", Timestamp: ts},
	}

	core.SortEntriesDesc(entries)

	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].ID)
	// Same timestamp: id ascending, so the order is stable across runs.
	assert.Equal(t, "b", entries[1].ID)
	assert.Equal(t, "c", entries[2].ID)
}
