package ai

import (
	"strings"
	"time"

	"github.com/johnquangdev/meetmind/pkg/config"
)

// Provider names a chat-completions backend
type Provider string

const (
	ProviderHuggingFace Provider = "huggingface"
	ProviderOpenAI      Provider = "openai"
)

type providerDefaults struct {
	baseURL   string
	model     string
	maxTokens int
	jsonMode  bool
}

var defaults = map[Provider]providerDefaults{
	ProviderHuggingFace: {
		baseURL:   "https://router.huggingface.co/v1",
		model:     "mistralai/Mistral-7B-Instruct-v0.2",
		maxTokens: 1000,
	},
	ProviderOpenAI: {
		baseURL:  "https://api.openai.com/v1",
		model:    "gpt-4-turbo-preview",
		jsonMode: true,
	},
}

// DetectProvider picks the backend from the shape of the API key.
// HuggingFace tokens start with "hf_".
func DetectProvider(apiKey string) Provider {
	if strings.HasPrefix(apiKey, "hf_") {
		return ProviderHuggingFace
	}
	return ProviderOpenAI
}

// NewChatClientFromConfig builds a ChatClient for the provider implied by
// cfg.APIKey, letting explicit config values override provider defaults.
func NewChatClientFromConfig(cfg *config.ModelConfig) *ChatClient {
	provider := DetectProvider(cfg.APIKey)
	d := defaults[provider]

	opts := ChatOptions{
		Provider:    provider,
		APIKey:      cfg.APIKey,
		BaseURL:     d.baseURL,
		Model:       d.model,
		MaxTokens:   d.maxTokens,
		Temperature: cfg.Temperature,
		JSONMode:    d.jsonMode,
		Timeout:     cfg.Timeout,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
	}
	if cfg.BaseURL != "" {
		opts.BaseURL = cfg.BaseURL
	}
	if cfg.Name != "" {
		opts.Model = cfg.Name
	}
	if cfg.MaxTokens > 0 {
		opts.MaxTokens = cfg.MaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	return NewChatClient(opts)
}
