package core

import "fmt"

// StockSuggestion is the AI-generated stock level recommendation for one
// item. Reasoning and alert are bilingual so either language can be shown
// directly.
type StockSuggestion struct {
	SuggestedStock int64  `json:"suggested_stock" jsonschema_description:"The recommended stock level for this item as a whole number of units"`
	ReasoningEn    string `json:"reasoning_en" jsonschema_description:"Explanation of the recommendation in English"`
	ReasoningAr    string `json:"reasoning_ar" jsonschema_description:"Explanation of the recommendation in Arabic"`
	AlertEn        string `json:"alert_en,omitempty" jsonschema_description:"Optional warning in English, e.g. when the item risks running out before restocking. Empty when there is nothing to warn about."`
	AlertAr        string `json:"alert_ar,omitempty" jsonschema_description:"Optional warning in Arabic. Empty when there is nothing to warn about."`
}

// Validate rejects suggestions that cannot be displayed.
func (s *StockSuggestion) Validate() error {
	if s.SuggestedStock < 0 {
		return fmt.Errorf("suggested stock must not be negative, got %d", s.SuggestedStock)
	}
	if s.ReasoningEn == "" && s.ReasoningAr == "" {
		return fmt.Errorf("suggestion carries no reasoning")
	}
	return nil
}
