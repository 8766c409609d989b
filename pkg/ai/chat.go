package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/johnquangdev/meetmind/internal/infrastructure/external"
)

const (
	defaultRateLimit = 2
	defaultRateBurst = 4
)

// ChatOptions configures a ChatClient
type ChatOptions struct {
	Provider    Provider
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	JSONMode    bool
	Timeout     time.Duration
	RateLimit   float64
	RateBurst   int
}

// ChatClient is a minimal client for OpenAI-compatible chat completion APIs
type ChatClient struct {
	provider    Provider
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	jsonMode    bool
	client      *http.Client
	limiter     *rate.Limiter
}

// NewChatClient creates a chat client. Requests are authenticated with a
// bearer token and throttled client side.
func NewChatClient(opts ChatOptions) *ChatClient {
	limit := opts.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	burst := opts.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}

	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: opts.APIKey,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = opts.Timeout

	return &ChatClient{
		provider:    opts.Provider,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		jsonMode:    opts.JSONMode,
		client:      httpClient,
		limiter:     rate.NewLimiter(rate.Limit(limit), burst),
	}
}

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat requests structured output from providers that support it
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Model returns the model identifier requests are sent with
func (c *ChatClient) Model() string {
	return c.model
}

// Provider returns the backend this client talks to
func (c *ChatClient) Provider() Provider {
	return c.provider
}

// GenerateSummary sends the transcript with the summary system prompt and
// returns the raw assistant content, untouched.
func (c *ChatClient) GenerateSummary(ctx context.Context, transcript string) (string, error) {
	system := SystemPrompt
	var format *ResponseFormat
	if c.jsonMode {
		format = &ResponseFormat{Type: "json_object"}
	} else {
		system += jsonOnlyReminder
	}

	return c.Complete(ctx, ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: userPrompt(transcript)},
		},
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: format,
	})
}

// Complete posts a chat completion request and returns the first choice
func (c *ChatClient) Complete(ctx context.Context, reqBody ChatRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := external.CheckResponse(string(c.provider), resp); err != nil {
		return "", err
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", c.provider, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.provider)
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
