// backend/handlers/export_handler.go
package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gewnthar/demandtrends/backend/export"
)

// Export handles POST /api/analyze/export. It takes the same body as Analyze
// and returns the synthetic series as CSV without calling the model.
func (h *AnalyzeHandler) Export(w http.ResponseWriter, r *http.Request) {
	input, err := decodeFilterInput(w, r)
	if err != nil {
		respondWithDecodeError(w, err)
		return
	}

	records, err := h.analyzer.GenerateSeries(input)
	if err != nil {
		respondWithGenerationError(w, err)
		return
	}

	body, err := export.RecordsCSV(records)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Handler: Exporting %d records for %s-%s as CSV\n", len(records), input.Origin, input.Destination)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(input)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
