package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/enjleezdev/theappez/internal/core"
)

func TestComputeConsumptionStats(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []core.HistoryEntry{
		{Type: core.EntryCreateItem, Change: 100, Timestamp: now.AddDate(0, 0, -60)},
		{Type: core.EntryConsumeStock, Change: -10, Timestamp: now.AddDate(0, 0, -40)}, // outside window
		{Type: core.EntryAddStock, Change: 20, Timestamp: now.AddDate(0, 0, -20)},
		{Type: core.EntryConsumeStock, Change: -15, Timestamp: now.AddDate(0, 0, -10)},
		{Type: core.EntryAdjustStock, Change: -5, Timestamp: now.AddDate(0, 0, -5)},
		{Type: core.EntryAdjustStock, Change: 3, Timestamp: now.AddDate(0, 0, -2)},
	}

	stats := ComputeConsumptionStats(entries, now, 30)

	assert.Equal(t, 30, stats.WindowDays)
	assert.Equal(t, int64(20), stats.TotalConsumed) // 15 + 5; the -10 is out of window
	assert.Equal(t, int64(23), stats.TotalAdded)    // 20 + 3
	assert.Equal(t, "0.67", stats.DailyAverage.StringFixed(2))
}

func TestComputeConsumptionStats_IgnoresCreateEntry(t *testing.T) {
	now := time.Now().UTC()
	entries := []core.HistoryEntry{
		{Type: core.EntryCreateItem, Change: 50, Timestamp: now.AddDate(0, 0, -1)},
	}

	stats := ComputeConsumptionStats(entries, now, 30)
	assert.Zero(t, stats.TotalAdded)
	assert.Zero(t, stats.TotalConsumed)
}

func TestComputeConsumptionStats_DefaultsWindow(t *testing.T) {
	stats := ComputeConsumptionStats(nil, time.Now(), 0)
	assert.Equal(t, 30, stats.WindowDays)
	assert.True(t, stats.DailyAverage.IsZero())
}

func TestBuildSuggestionPrompt_CapsHistory(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	item := &core.Item{Name: "Bolts", Quantity: 40, Location: "A-3"}
	for i := 0; i < 40; i++ {
		item.History = append(item.History, core.HistoryEntry{
			ID:        string(rune('a' + i%26)),
			Type:      core.EntryAddStock,
			Change:    1,
			Timestamp: now.AddDate(0, 0, -i),
		})
	}

	prompt := buildSuggestionPrompt(item, "Main", now)
	assert.Contains(t, prompt, "Item: Bolts")
	assert.Contains(t, prompt, "Warehouse: Main")
	assert.Contains(t, prompt, "Current quantity: 40")
}

func TestBuildSuggestionPrompt_EmptyHistory(t *testing.T) {
	item := &core.Item{Name: "Bolts"}
	prompt := buildSuggestionPrompt(item, "Main", time.Now())
	assert.Contains(t, prompt, "(no recorded activity)")
}
