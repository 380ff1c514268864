// backend/handlers/validation.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/gewnthar/demandtrends/backend/models"
)

const maxBodyBytes = 1 << 20

// errBodyTooLarge is answered with 413; every other decode error is a 422.
var errBodyTooLarge = errors.New("request body too large")

const filterInputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["origin", "destination", "start_date", "end_date"],
  "properties": {
    "origin": { "type": "string" },
    "destination": { "type": "string" },
    "start_date": { "type": "string" },
    "end_date": { "type": "string" }
  }
}`

var filterInputLoader = gojsonschema.NewStringLoader(filterInputSchema)

// decodeFilterInput reads the body and checks it against the FilterInput schema.
// Bodies over maxBodyBytes fail with errBodyTooLarge.
func decodeFilterInput(w http.ResponseWriter, r *http.Request) (models.FilterInput, error) {
	var input models.FilterInput

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return input, fmt.Errorf("%w (limit %d bytes)", errBodyTooLarge, tooLarge.Limit)
		}
		return input, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return input, fmt.Errorf("request body is empty")
	}

	result, err := gojsonschema.Validate(filterInputLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return input, fmt.Errorf("invalid JSON body: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return input, fmt.Errorf("invalid request body: %s", strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal(raw, &input); err != nil {
		return input, fmt.Errorf("invalid JSON body: %w", err)
	}
	return input, nil
}

func respondWithDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		respondWithError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	respondWithError(w, http.StatusUnprocessableEntity, err.Error())
}
