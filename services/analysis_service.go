// backend/services/analysis_service.go
package services

import (
	"context"
	"fmt"
	"log"

	"github.com/gewnthar/demandtrends/backend/models"
	"github.com/gewnthar/demandtrends/backend/simulator"
)

// Insighter is the part of InsightService the analysis flow depends on.
type Insighter interface {
	RequestInsights(ctx context.Context, records []models.DailyRecord, origin, destination string) models.InsightResult
}

// AnalysisService runs generator then requestor for one request. It holds no
// per-request state and is safe to share between handlers.
type AnalysisService struct {
	params   simulator.Params
	insights Insighter
}

// NewAnalysisService builds the orchestrator.
func NewAnalysisService(params simulator.Params, insights Insighter) *AnalysisService {
	return &AnalysisService{params: params, insights: insights}
}

// GenerateSeries produces the synthetic series only. Range errors wrap simulator.ErrInvalidRange.
func (s *AnalysisService) GenerateSeries(input models.FilterInput) ([]models.DailyRecord, error) {
	records, err := s.params.Generate(input.Origin, input.Destination, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to generate series for %s-%s: %w", input.Origin, input.Destination, err)
	}
	return records, nil
}

// Analyze generates the series and asks for insights, strictly in that order.
// Only range errors are returned; insight failures are embedded in the envelope.
func (s *AnalysisService) Analyze(ctx context.Context, input models.FilterInput) (*models.ResponseEnvelope, error) {
	log.Printf("Service: Analyzing %s-%s from %s to %s\n", input.Origin, input.Destination, input.StartDate, input.EndDate)

	records, err := s.GenerateSeries(input)
	if err != nil {
		return nil, err
	}
	log.Printf("Service: Generated %d daily records for %s-%s\n", len(records), input.Origin, input.Destination)

	result := s.insights.RequestInsights(ctx, records, input.Origin, input.Destination)
	if result.Err != nil {
		log.Printf("WARN Service: Insights for %s-%s unavailable (kind: %s, retryable: %t): %s\n",
			input.Origin, input.Destination, result.Err.Kind, result.Err.Retryable(), result.Err.Message)
	}

	return &models.ResponseEnvelope{Data: records, Insights: result}, nil
}
