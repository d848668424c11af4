package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiChat(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{{Text: "generated"}}}},
			},
		})
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "test-key", Model: "gemini-2.0-flash", BaseURL: srv.URL})

	out, err := p.Chat(context.Background(), "be helpful", []Turn{
		{Role: "user", Text: "hello"},
		{Role: "assistant", Text: "hi"},
		{Role: "user", Text: "again"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", out)

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Equal(t, "be helpful", gotBody.SystemInstruction.Parts[0].Text)

	// Assistant turns map to Gemini's "model" role.
	require.Len(t, gotBody.Contents, 3)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
	assert.Equal(t, "model", gotBody.Contents[1].Role)
}

func TestGeminiRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), "sys", "user")
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestGeminiServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestOpenAIChat(t *testing.T) {
	var gotAuth string
	var gotBody openAIRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(openAIResponse{
			Choices: []openAIChoice{
				{Message: openAIMessage{Role: "assistant", Content: "generated"}},
			},
		})
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "test-key", Model: "gpt-4o", BaseURL: srv.URL})

	out, err := p.Chat(context.Background(), "be helpful", []Turn{
		{Role: "user", Text: "hello"},
		{Role: "assistant", Text: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", out)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o", gotBody.Model)

	// System prompt leads the message list.
	require.Len(t, gotBody.Messages, 3)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "assistant", gotBody.Messages[2].Role)
}

func TestOpenAIRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), "sys", "user")
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestRegistrySkipsProvidersWithoutKeys(t *testing.T) {
	r := NewRegistry("gemini", map[string]ProviderConfig{
		"gemini": {APIKey: "k", Model: "m"},
		"openai": {Model: "m"}, // no key
	})

	assert.Equal(t, []string{"gemini"}, r.Available())

	_, err := r.Active()
	require.NoError(t, err)

	require.Error(t, r.SetActive("openai"))
	require.NoError(t, r.SetActive("gemini"))
}
