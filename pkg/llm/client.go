// Package llm provides a minimal OpenAI-compatible chat client used by the
// detection fallback classifier and the persona generator. Providers are
// interchangeable: anything exposing /chat/completions works.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/scambait/scambait/pkg/httputil"
)

// Provider defines the backend service type
type Provider string

const (
	ProviderCerebras   Provider = "cerebras"
	ProviderGroq       Provider = "groq"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOllama     Provider = "ollama"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chatter is the surface the cascade and persona depend on. Satisfied by
// *Client; tests substitute stubs.
type Chatter interface {
	Chat(ctx context.Context, msgs []Message) (string, error)
}

// Config holds the settings for one provider client.
type Config struct {
	Provider    Provider
	APIKey      string // Optional for Ollama
	Model       string
	BaseURL     string  // Optional override
	Temperature float64 // Defaults to DefaultTemperature
	MaxTokens   int     // Defaults to DefaultMaxTokens
}

// DefaultTemperature keeps the persona lively without losing coherence.
const DefaultTemperature = 0.8

// DefaultMaxTokens caps persona replies. The persona speaks in one or two
// short sentences; anything longer is a generation gone wrong.
const DefaultMaxTokens = 200

// Client calls an OpenAI-compatible chat endpoint.
type Client struct {
	client      *http.Client
	provider    Provider
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewClient creates a chat client for the given provider. Per-call deadlines
// come from the caller's context; the shared HTTP client only bounds the
// worst case.
func NewClient(cfg Config) *Client {
	var baseURL string

	switch cfg.Provider {
	case ProviderCerebras:
		baseURL = "https://api.cerebras.ai/v1"
	case ProviderGroq:
		baseURL = "https://api.groq.com/openai/v1"
	case ProviderOllama:
		baseURL = "http://localhost:11434/v1" // OpenAI compatible endpoint of Ollama
	case ProviderOpenRouter:
		fallthrough
	default:
		baseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Client{
		client:      httputil.ModelClient(),
		provider:    cfg.Provider,
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Chat sends the messages and returns the first choice's content.
func (c *Client) Chat(ctx context.Context, msgs []Message) (string, error) {
	if c.provider != ProviderOllama && c.apiKey == "" {
		return "", fmt.Errorf("API key not configured for %s", c.provider)
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	// Handle trailing slash in baseURL just in case
	endpoint := strings.TrimRight(c.baseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer httputil.DrainAndClose(resp.Body)

	// Providers are external and untrusted; bound the read so a broken
	// endpoint cannot exhaust memory.
	body, err := httputil.ReadResponseBody(resp.Body, httputil.MaxResponseSize)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal error: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return result.Choices[0].Message.Content, nil
}
