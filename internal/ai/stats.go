package ai

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/enjleezdev/theappez/internal/core"
)

// ConsumptionStats summarizes recent consumption for the suggestion
// prompt. DailyAverage keeps fractional precision so a slow-moving item
// (e.g. 3 units over 30 days) is not rounded to zero.
type ConsumptionStats struct {
	WindowDays    int
	TotalConsumed int64
	TotalAdded    int64
	DailyAverage  decimal.Decimal
}

// ComputeConsumptionStats aggregates ledger activity within the last
// windowDays before now. Adjustments count toward the side their sign
// indicates.
func ComputeConsumptionStats(entries []core.HistoryEntry, now time.Time, windowDays int) ConsumptionStats {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	stats := ConsumptionStats{WindowDays: windowDays}
	for _, e := range entries {
		if e.Timestamp.Before(cutoff) || e.Timestamp.After(now) {
			continue
		}
		if e.Change < 0 {
			stats.TotalConsumed += -e.Change
		} else if e.Type != core.EntryCreateItem {
			stats.TotalAdded += e.Change
		}
	}
	stats.DailyAverage = decimal.NewFromInt(stats.TotalConsumed).
		Div(decimal.NewFromInt(int64(windowDays))).
		Round(2)
	return stats
}
