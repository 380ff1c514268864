// backend/models/insight.go
package models

import (
	"encoding/json"
	"errors"
)

// Insights is the structured summary the model is asked to return.
type Insights struct {
	DemandTrend  string   `json:"demand_trend"`
	PriceTrend   string   `json:"price_trend"`
	PopularDays  []string `json:"popular_days"`
	Observations string   `json:"observations"`
}

// InsightErrorKind classifies why insights could not be produced.
type InsightErrorKind string

const (
	ErrKindValidation          InsightErrorKind = "validation"           // bad input, not retryable
	ErrKindUpstreamUnavailable InsightErrorKind = "upstream_unavailable" // network/auth/quota, retryable
	ErrKindUpstreamMalformed   InsightErrorKind = "upstream_malformed"   // model answered, but not usable
)

// Message returned when the model reply carries no ```json block.
const NoJSONBlockMessage = "Gemini did not return valid JSON format."

// InsightError is the failure side of an InsightResult.
type InsightError struct {
	Kind    InsightErrorKind
	Message string // exactly what goes into {"error": ...}
	Err     error  // underlying cause, may be nil
}

func (e *InsightError) Error() string { return e.Message }

func (e *InsightError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same request could succeed.
func (e *InsightError) Retryable() bool { return e.Kind == ErrKindUpstreamUnavailable }

// InsightResult is either a successful Insights value or an error, never both.
// On the wire the error variant is {"error": "..."}.
type InsightResult struct {
	Insights *Insights
	Err      *InsightError
}

// InsightSuccess wraps a parsed model answer.
func InsightSuccess(in Insights) InsightResult {
	return InsightResult{Insights: &in}
}

// InsightFailure wraps a classified failure.
func InsightFailure(kind InsightErrorKind, message string, cause error) InsightResult {
	return InsightResult{Err: &InsightError{Kind: kind, Message: message, Err: cause}}
}

// OK reports whether this is the success variant.
func (r InsightResult) OK() bool { return r.Err == nil && r.Insights != nil }

func (r InsightResult) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(map[string]string{"error": r.Err.Message})
	}
	if r.Insights == nil {
		return nil, errors.New("insight result has neither insights nor error")
	}
	return json.Marshal(r.Insights)
}

func (r *InsightResult) UnmarshalJSON(data []byte) error {
	var shape struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return err
	}
	if shape.Error != nil {
		*r = InsightResult{Err: &InsightError{Message: *shape.Error}}
		return nil
	}
	var in Insights
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = InsightResult{Insights: &in}
	return nil
}
