package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"childsim/internal/prompt"
)

func testPrompt() prompt.Prompt {
	return prompt.Prompt{System: "system text", User: "user text", MaxTokens: 256}
}

func TestOpenAIGenerate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"ok":true}`}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient(Config{BaseURL: srv.URL, APIKey: "sk-test", Model: "test-model"})
	out, err := c.Generate(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, 256, gotReq.MaxTokens)
}

func TestOpenAIRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewOpenAIClient(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), testPrompt())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.True(t, IsTransient(err))
}

func TestOpenAIServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOpenAIClient(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), testPrompt())
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 500, svcErr.Status)
	assert.True(t, IsTransient(err))
}

func TestOpenAIClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such model", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOpenAIClient(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), testPrompt())
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestOpenAIPacing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "x"}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient(Config{BaseURL: srv.URL, MinRequestInterval: 50 * time.Millisecond})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.Generate(context.Background(), testPrompt())
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "json", req.Format)
		assert.False(t, req.Stream)
		assert.Equal(t, "system text", req.System)

		json.NewEncoder(w).Encode(map[string]any{"response": `{"ok":true}`})
	}))
	defer srv.Close()

	c := NewOllamaClient(Config{BaseURL: srv.URL, Model: "llama3"})
	out, err := c.Generate(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
}

func TestIsTransientTable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", ErrRateLimited, true},
		{"deadline", context.DeadlineExceeded, true},
		{"cancelled", context.Canceled, false},
		{"500", &ServiceError{Status: 500}, true},
		{"503", &ServiceError{Status: 503}, true},
		{"429", &ServiceError{Status: 429}, true},
		{"400", &ServiceError{Status: 400}, false},
		{"401", &ServiceError{Status: 401}, false},
		{"plain", errors.New("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestNewProvider(t *testing.T) {
	c, err := New("openai", Config{Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = New("ollama", Config{Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &OllamaClient{}, c)

	_, err = New("carrier-pigeon", Config{})
	require.Error(t, err)
}
