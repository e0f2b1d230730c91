package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tinyllama", req.Model)
		assert.Contains(t, req.Prompt, "concise sentence")
		assert.False(t, req.Stream)
		assert.InDelta(t, 0.7, req.Options.Temperature, 1e-9)

		json.NewEncoder(w).Encode(generateResponse{Response: "doom and glory", Done: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	text, err := c.Generate(context.Background(), "tinyllama", "Compose exactly one concise sentence.", 0.7)
	require.NoError(t, err)
	assert.Equal(t, "doom and glory", text)
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "nope", "hi", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestGenerate_ApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "out of memory"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "m", "hi", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestGenerate_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).Generate(ctx, "m", "hi", 1)
	assert.Error(t, err)
}

func TestGenerate_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // Gone before the call.

	_, err := NewClient(srv.URL).Generate(context.Background(), "m", "hi", 1)
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.NotNil(t, c.httpClient)
}
