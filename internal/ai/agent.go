package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"github.com/enjleezdev/theappez/internal/core"
)

// SuggestionService produces a stock level recommendation for an item.
type SuggestionService interface {
	SuggestStock(ctx context.Context, item *core.Item, warehouseName string) (*core.StockSuggestion, error)
}

// Agent calls the generative service with a strict JSON schema so the
// response parses directly into core.StockSuggestion. No retry or prompt
// iteration happens here; transport errors surface to the caller.
type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// recentEntryLimit caps how much ledger detail goes into the prompt.
const recentEntryLimit = 20

func (a *Agent) SuggestStock(ctx context.Context, item *core.Item, warehouseName string) (*core.StockSuggestion, error) {
	prompt := buildSuggestionPrompt(item, warehouseName, time.Now().UTC())

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "stock_suggestion",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A stock level recommendation for a warehouse item"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var suggestion core.StockSuggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion: %w", err)
	}
	if err := suggestion.Validate(); err != nil {
		return nil, fmt.Errorf("suggestion validation failed: %w", err)
	}
	return &suggestion, nil
}

// buildSuggestionPrompt renders item metadata, consumption statistics,
// and the most recent ledger entries into the suggestion prompt.
func buildSuggestionPrompt(item *core.Item, warehouseName string, now time.Time) string {
	stats := ComputeConsumptionStats(item.History, now, 30)

	recent := make([]core.HistoryEntry, len(item.History))
	copy(recent, item.History)
	core.SortEntriesDesc(recent)
	if len(recent) > recentEntryLimit {
		recent = recent[:recentEntryLimit]
	}

	var history strings.Builder
	for _, e := range recent {
		fmt.Fprintf(&history, "- %s %s %+d (%d -> %d)",
			e.Timestamp.Format("2006-01-02"), e.Type, e.Change, e.QuantityBefore, e.QuantityAfter)
		if e.Comment != "" {
			fmt.Fprintf(&history, " (%s)", e.Comment)
		}
		history.WriteString("\n")
	}
	if history.Len() == 0 {
		history.WriteString("(no recorded activity)\n")
	}

	return fmt.Sprintf(`You are an inventory planning assistant.
Recommend a stock level for the item below based on its recent activity.
Rules:
1. suggested_stock is a whole number of units.
2. Provide reasoning in both English and Arabic.
3. Set alert_en/alert_ar only when the item risks running out or is clearly overstocked; otherwise leave them empty.

Item: %s
Warehouse: %s
Location: %s
Current quantity: %d
Consumed in last %d days: %d units (avg %s/day)
Added in last %d days: %d units

Recent history (most recent first):
%s`,
		item.Name, warehouseName, item.Location, item.Quantity,
		stats.WindowDays, stats.TotalConsumed, stats.DailyAverage.String(),
		stats.WindowDays, stats.TotalAdded,
		history.String())
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.StockSuggestion
	return reflector.Reflect(v)
}
