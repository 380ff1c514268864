// backend/services/prompt.go
package services

import (
	"encoding/json"
	"fmt"

	"github.com/gewnthar/demandtrends/backend/models"
)

const insightPromptTemplate = `
Analyze this airline booking and pricing data between %s and %s:
%s

Extract:
1. Popular travel days or high-demand periods
2. Demand trend (increasing/decreasing/stable)
3. Price trend (rising/falling/stable)
4. Key observations

Return the output **strictly as valid JSON** inside triple backticks like this:
` + "```json" + `
{
  "demand_trend": "...",
  "price_trend": "...",
  "popular_days": ["..."],
  "observations": "..."
}
` + "```" + `
`

// BuildInsightPrompt embeds the series as a JSON array and the route into the model prompt.
func BuildInsightPrompt(records []models.DailyRecord, origin, destination string) (string, error) {
	if records == nil {
		records = []models.DailyRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to marshal booking records for prompt: %w", err)
	}
	return fmt.Sprintf(insightPromptTemplate, origin, destination, data), nil
}
