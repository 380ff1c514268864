package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gewnthar/demandtrends/backend/llm"
	"github.com/gewnthar/demandtrends/backend/models"
)

// fakeModel records prompts and replays a canned reply.
type fakeModel struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeModel) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

var sampleRecords = []models.DailyRecord{
	{Date: "2024-01-01", Origin: "SYD", Destination: "MEL", Bookings: 145, Price: 151},
	{Date: "2024-01-02", Origin: "SYD", Destination: "MEL", Bookings: 159, Price: 197.51},
}

const validReply = "Sure! Here is the analysis.\n```json\n" + `{
  "demand_trend": "stable",
  "price_trend": "rising",
  "popular_days": ["2024-01-02"],
  "observations": "Prices climb into the weekend."
}` + "\n```\nLet me know if you need more."

func TestRequestInsights_ValidBlock(t *testing.T) {
	model := &fakeModel{reply: validReply}
	svc := NewInsightService(model)

	result := svc.RequestInsights(context.Background(), sampleRecords, "SYD", "MEL")
	require.True(t, result.OK())
	assert.Equal(t, "stable", result.Insights.DemandTrend)
	assert.Equal(t, "rising", result.Insights.PriceTrend)
	assert.Equal(t, []string{"2024-01-02"}, result.Insights.PopularDays)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Len(t, keys, 4)
	for _, k := range []string{"demand_trend", "price_trend", "popular_days", "observations"} {
		assert.Contains(t, keys, k)
	}
}

func TestRequestInsights_ExtraKeysDropped(t *testing.T) {
	reply := "```json\n{\"demand_trend\":\"up\",\"price_trend\":\"flat\",\"popular_days\":[],\"observations\":\"ok\",\"confidence\":0.9}\n```"
	svc := NewInsightService(&fakeModel{reply: reply})

	result := svc.RequestInsights(context.Background(), sampleRecords, "SYD", "MEL")
	require.True(t, result.OK())

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "confidence")
}

func TestRequestInsights_NoFencedBlock(t *testing.T) {
	svc := NewInsightService(&fakeModel{reply: `{"demand_trend": "stable"}`})

	result := svc.RequestInsights(context.Background(), sampleRecords, "SYD", "MEL")
	require.False(t, result.OK())
	assert.Equal(t, models.ErrKindUpstreamMalformed, result.Err.Kind)
	assert.ErrorIs(t, result.Err, llm.ErrNoFencedBlock)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Gemini did not return valid JSON format."}`, string(raw))
}

func TestRequestInsights_Failures(t *testing.T) {
	tests := []struct {
		name      string
		model     *fakeModel
		wantKind  models.InsightErrorKind
		retryable bool
		contains  string
	}{
		{
			name:      "upstream error",
			model:     &fakeModel{err: errors.New("googleapi: Error 403: API key not valid")},
			wantKind:  models.ErrKindUpstreamUnavailable,
			retryable: true,
			contains:  "API key not valid",
		},
		{
			name:     "malformed JSON",
			model:    &fakeModel{reply: "```json\n{demand_trend: stable,}\n```"},
			wantKind: models.ErrKindUpstreamMalformed,
			contains: "malformed JSON",
		},
		{
			name:     "missing field",
			model:    &fakeModel{reply: "```json\n{\"demand_trend\":\"up\",\"price_trend\":\"up\",\"observations\":\"x\"}\n```"},
			wantKind: models.ErrKindUpstreamMalformed,
			contains: "popular_days",
		},
		{
			name:     "mistyped field",
			model:    &fakeModel{reply: "```json\n{\"demand_trend\":\"up\",\"price_trend\":\"up\",\"popular_days\":\"Friday\",\"observations\":\"x\"}\n```"},
			wantKind: models.ErrKindUpstreamMalformed,
			contains: "insight schema",
		},
		{
			name:     "array instead of object",
			model:    &fakeModel{reply: "```json\n[1, 2, 3]\n```"},
			wantKind: models.ErrKindUpstreamMalformed,
			contains: "insight schema",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewInsightService(tt.model).RequestInsights(context.Background(), sampleRecords, "SYD", "MEL")
			require.False(t, result.OK())
			assert.Equal(t, tt.wantKind, result.Err.Kind)
			assert.Equal(t, tt.retryable, result.Err.Retryable())
			assert.True(t, strings.HasPrefix(result.Err.Message, "AI processing failed: "), result.Err.Message)
			assert.Contains(t, result.Err.Message, tt.contains)
			assert.Len(t, tt.model.prompts, 1, "exactly one model call")
		})
	}
}

func TestRequestInsights_NilGenerator(t *testing.T) {
	result := NewInsightService(nil).RequestInsights(context.Background(), sampleRecords, "SYD", "MEL")
	require.False(t, result.OK())
	assert.Equal(t, models.ErrKindUpstreamUnavailable, result.Err.Kind)
}

func TestRequestInsights_StripsHTML(t *testing.T) {
	reply := "```json\n{\"demand_trend\":\"<b>stable</b>\",\"price_trend\":\"rising\",\"popular_days\":[\"Saturday\"],\"observations\":\"Weekends cost more.<br>Mondays are quiet.\"}\n```"
	result := NewInsightService(&fakeModel{reply: reply}).RequestInsights(context.Background(), sampleRecords, "SYD", "MEL")
	require.True(t, result.OK())
	assert.Equal(t, "stable", result.Insights.DemandTrend)
	assert.Equal(t, "Weekends cost more.\nMondays are quiet.", result.Insights.Observations)
}

func TestRequestInsights_KeepsComparisonsVerbatim(t *testing.T) {
	reply := "```json\n" + `{
  "demand_trend": "stable",
  "price_trend": "Fri &amp; Sat peak",
  "popular_days": ["Sat<Sun"],
  "observations": "a<b: Weekday fares<Weekend fares by ~30.  "
}` + "\n```"
	result := NewInsightService(&fakeModel{reply: reply}).RequestInsights(context.Background(), sampleRecords, "SYD", "MEL")
	require.True(t, result.OK(), "unexpected error: %v", result.Err)
	assert.Equal(t, "a<b: Weekday fares<Weekend fares by ~30.  ", result.Insights.Observations)
	assert.Equal(t, "Fri &amp; Sat peak", result.Insights.PriceTrend)
	assert.Equal(t, []string{"Sat<Sun"}, result.Insights.PopularDays)
}

type ctxKey struct{}

func TestRequestInsights_PassesContextToModel(t *testing.T) {
	var seen interface{}
	model := llm.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		seen = ctx.Value(ctxKey{})
		return "", ctx.Err()
	})
	svc := NewInsightService(model)

	ctx := context.WithValue(context.Background(), ctxKey{}, "request-7")
	result := svc.RequestInsights(ctx, sampleRecords, "SYD", "MEL")
	assert.Equal(t, "request-7", seen)
	assert.False(t, result.OK())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	result = svc.RequestInsights(cancelled, sampleRecords, "SYD", "MEL")
	require.False(t, result.OK())
	assert.ErrorIs(t, result.Err, context.Canceled)
	assert.Equal(t, models.ErrKindUpstreamUnavailable, result.Err.Kind)
	assert.Equal(t, "AI processing failed: context canceled", result.Err.Message)
}

func TestBuildInsightPrompt(t *testing.T) {
	prompt, err := BuildInsightPrompt(sampleRecords, "SYD", "MEL")
	require.NoError(t, err)

	assert.Contains(t, prompt, "between SYD and MEL")
	assert.Contains(t, prompt, `[{"date":"2024-01-01","origin":"SYD","destination":"MEL","bookings":145,"price":151},`)
	assert.Contains(t, prompt, "```json")
	for _, k := range []string{"demand_trend", "price_trend", "popular_days", "observations"} {
		assert.Contains(t, prompt, `"`+k+`"`)
	}
}
