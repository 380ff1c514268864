// backend/handlers/analyze_handler.go
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gewnthar/demandtrends/backend/models"
	"github.com/gewnthar/demandtrends/backend/simulator"
)

// Analyzer is what the HTTP layer needs from services.AnalysisService.
type Analyzer interface {
	Analyze(ctx context.Context, input models.FilterInput) (*models.ResponseEnvelope, error)
	GenerateSeries(input models.FilterInput) ([]models.DailyRecord, error)
}

// AnalyzeHandler serves the analysis endpoints.
type AnalyzeHandler struct {
	analyzer Analyzer
}

func NewAnalyzeHandler(analyzer Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// Analyze handles POST /api/analyze
// with JSON body: {"origin": "SYD", "destination": "MEL", "start_date": "2024-01-01", "end_date": "2024-01-07"}
// It answers 200 whenever the series was generated, even if the insights are the error variant.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	input, err := decodeFilterInput(w, r)
	if err != nil {
		respondWithDecodeError(w, err)
		return
	}

	log.Printf("Handler: Received analyze request for %s-%s, %s to %s\n", input.Origin, input.Destination, input.StartDate, input.EndDate)

	envelope, err := h.analyzer.Analyze(r.Context(), input)
	if err != nil {
		respondWithGenerationError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, envelope)
}

func respondWithGenerationError(w http.ResponseWriter, err error) {
	if errors.Is(err, simulator.ErrInvalidRange) {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}
