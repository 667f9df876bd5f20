package gemini

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error)
	calls        int
}

func (m *mockGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	return m.generateFunc(ctx, model, contents)
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestClient_Generate_ConcatenatesParts(t *testing.T) {
	var gotModel, gotPrompt string
	mock := &mockGenerator{generateFunc: func(ctx context.Context, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
		gotModel = model
		gotPrompt = contents[0].Parts[0].Text
		return textResponse(
			&genai.Part{Text: "planning...", Thought: true},
			&genai.Part{Text: "A: Hello "},
			&genai.Part{Text: "there."},
		), nil
	}}

	client := newClient(mock, "gemini-2.0-flash", 0)
	text, err := client.Generate(context.Background(), "Summarize this")

	require.NoError(t, err)
	assert.Equal(t, "A: Hello there.", text)
	assert.Equal(t, "gemini-2.0-flash", gotModel)
	assert.Equal(t, "Summarize this", gotPrompt)
}

func TestClient_Generate_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no parts", textResponse()},
		{"blank text", textResponse(&genai.Part{Text: "  "})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockGenerator{generateFunc: func(context.Context, string, []*genai.Content) (*genai.GenerateContentResponse, error) {
				return tt.resp, nil
			}}

			_, err := newClient(mock, "m", 0).Generate(context.Background(), "p")
			require.Error(t, err)
			assert.True(t, errors.IsGeneration(err))
		})
	}
}

func TestClient_Generate_RequestError(t *testing.T) {
	cause := stderrors.New("RESOURCE_EXHAUSTED")
	mock := &mockGenerator{generateFunc: func(context.Context, string, []*genai.Content) (*genai.GenerateContentResponse, error) {
		return nil, cause
	}}

	_, err := newClient(mock, "m", 0).Generate(context.Background(), "p")

	assert.True(t, errors.IsGeneration(err))
	assert.ErrorIs(t, err, cause)
}

func TestClient_Generate_RateLimitHonoursContext(t *testing.T) {
	mock := &mockGenerator{generateFunc: func(context.Context, string, []*genai.Content) (*genai.GenerateContentResponse, error) {
		return textResponse(&genai.Part{Text: "ok"}), nil
	}}
	client := newClient(mock, "m", 0.001)

	_, err := client.Generate(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Generate(ctx, "second")

	assert.True(t, errors.IsGeneration(err))
	assert.Equal(t, 1, mock.calls)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), configWithoutKey())
	assert.True(t, errors.IsConfig(err))
}

func configWithoutKey() config.GeminiConfig {
	return config.GeminiConfig{Model: "gemini-2.0-flash"}
}
