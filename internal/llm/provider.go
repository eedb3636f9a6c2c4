package llm

import "context"

// Provider is a chat-completion backend for the research engine. Implementations
// wrap one upstream API and normalize its failure modes: rate-limit responses
// come back tagged retryable so the sweep scheduler can back off and retry
// instead of aborting the run.
type Provider interface {
	// Name returns the provider name as used in configuration
	Name() string

	// Complete runs a single prompt through the model and returns the raw text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest carries one prompt for one research batch.
type CompletionRequest struct {
	// System sets the assistant role (if empty, provider sends no system message)
	System string

	// Prompt is the full user prompt: player briefs plus the output contract
	Prompt string

	// Model is the specific model to use (if empty, use configured default)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature overrides the configured sampling temperature when > 0
	Temperature float32
}

// CompletionResponse contains the provider-neutral completion output.
type CompletionResponse struct {
	// Text is the model output with surrounding whitespace trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for sampling; research sweeps run cold
	Temperature float32

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		Timeout:     120,
		MaxTokens:   2000,
		Temperature: 0.2,
	}
}
