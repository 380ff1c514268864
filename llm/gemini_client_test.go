package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_Arguments(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		model   string
		wantErr error
		errText string
	}{
		{name: "missing key", apiKey: "", model: "gemini-1.5-flash", wantErr: ErrMissingAPIKey},
		{name: "blank key", apiKey: "   ", model: "gemini-1.5-flash", wantErr: ErrMissingAPIKey},
		{name: "missing model", apiKey: "test-key", model: "", errText: "model name is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewGeminiClient(context.Background(), tt.apiKey, tt.model, 0)
			require.Error(t, err)
			assert.Nil(t, client)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.ErrorContains(t, err, tt.errText)
			}
		})
	}
}

func TestNewGeminiClient_Valid(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "test-key", "gemini-1.5-flash", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", client.Model())
	assert.Equal(t, 30*time.Second, client.timeout)
}

func TestGeminiClient_WithTimeout(t *testing.T) {
	c := &GeminiClient{timeout: time.Minute}
	ctx, cancel := c.withTimeout(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	c = &GeminiClient{}
	parent := context.Background()
	ctx, cancel = c.withTimeout(parent)
	defer cancel()
	_, ok = ctx.Deadline()
	assert.False(t, ok, "no timeout configured means no deadline")
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("GEMINI_API_KEY missing")
	text, err := Unavailable(cause).GenerateText(context.Background(), "prompt")
	assert.Empty(t, text)
	assert.Same(t, cause, err)
}
