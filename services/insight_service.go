// backend/services/insight_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/gewnthar/demandtrends/backend/llm"
	"github.com/gewnthar/demandtrends/backend/models"
)

const insightSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["demand_trend", "price_trend", "popular_days", "observations"],
  "properties": {
    "demand_trend": { "type": "string" },
    "price_trend": { "type": "string" },
    "popular_days": { "type": "array", "items": { "type": "string" } },
    "observations": { "type": "string" }
  }
}`

var insightSchemaLoader = gojsonschema.NewStringLoader(insightSchema)

// InsightService asks a text model to summarize a synthetic booking series.
type InsightService struct {
	generator llm.TextGenerator
}

// NewInsightService wires the service to a model client built at startup.
func NewInsightService(generator llm.TextGenerator) *InsightService {
	return &InsightService{generator: generator}
}

// RequestInsights makes exactly one model call. It never returns a Go error:
// every failure is folded into the error variant of the result.
func (s *InsightService) RequestInsights(ctx context.Context, records []models.DailyRecord, origin, destination string) models.InsightResult {
	if s.generator == nil {
		return failed(models.ErrKindUpstreamUnavailable, errors.New("no text model configured"))
	}

	prompt, err := BuildInsightPrompt(records, origin, destination)
	if err != nil {
		return failed(models.ErrKindValidation, err)
	}

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("ERROR Service: Model call for %s-%s failed: %v\n", origin, destination, err)
		return failed(models.ErrKindUpstreamUnavailable, err)
	}
	raw = strings.TrimSpace(raw)
	log.Printf("Service: RAW model response for %s-%s:\n%s\n", origin, destination, raw)

	block, err := llm.ExtractFencedBlock(raw, "json")
	if err != nil {
		log.Printf("WARN Service: Model response for %s-%s has no ```json block.\n", origin, destination)
		return models.InsightFailure(models.ErrKindUpstreamMalformed, models.NoJSONBlockMessage, err)
	}

	insights, err := parseInsights(block)
	if err != nil {
		log.Printf("WARN Service: Model JSON for %s-%s rejected: %v\n", origin, destination, err)
		return failed(models.ErrKindUpstreamMalformed, err)
	}
	return models.InsightSuccess(insights)
}

func failed(kind models.InsightErrorKind, err error) models.InsightResult {
	return models.InsightFailure(kind, fmt.Sprintf("AI processing failed: %v", err), err)
}

// parseInsights decodes the fenced block and checks it carries the four fields.
func parseInsights(block string) (models.Insights, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(block), &doc); err != nil {
		return models.Insights{}, fmt.Errorf("malformed JSON in model response: %w", err)
	}

	result, err := gojsonschema.Validate(insightSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return models.Insights{}, fmt.Errorf("failed to validate model JSON: %w", err)
	}
	if !result.Valid() {
		return models.Insights{}, fmt.Errorf("model JSON does not match insight schema: %s", describeSchemaErrors(result.Errors()))
	}

	var in models.Insights
	if err := json.Unmarshal([]byte(block), &in); err != nil {
		return models.Insights{}, fmt.Errorf("malformed JSON in model response: %w", err)
	}
	in.DemandTrend = llm.PlainText(in.DemandTrend)
	in.PriceTrend = llm.PlainText(in.PriceTrend)
	in.Observations = llm.PlainText(in.Observations)
	for i, day := range in.PopularDays {
		in.PopularDays[i] = llm.PlainText(day)
	}
	return in, nil
}

func describeSchemaErrors(errs []gojsonschema.ResultError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
