// Package llm provides clients for external text generation services.
//
// This package wraps the internal llm implementation and provides a
// clean public API for the external model capability consumed by
// delegated-mode generation.
//
// Example usage:
//
//	import (
//	    "github.com/sibyl-nlp/sibyl/llm"
//	    "github.com/sibyl-nlp/sibyl/oracle"
//	)
//
//	client := llm.NewClient("") // local Ollama
//	o := oracle.New(vocab, oracle.WithModel(client))
package llm

import (
	"net/http"

	"github.com/sibyl-nlp/sibyl/internal/llm"
)

// DefaultBaseURL is where a local Ollama server listens.
const DefaultBaseURL = llm.DefaultBaseURL

// Client talks to an Ollama-compatible /api/generate endpoint.
type Client = llm.Client

// ClientOption configures a Client.
type ClientOption = llm.ClientOption

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return llm.WithHTTPClient(hc)
}

// NewClient creates a client for the server at baseURL. An empty
// baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	return llm.NewClient(baseURL, opts...)
}
