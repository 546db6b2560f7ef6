package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Provider names accepted in the chain order.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderGroq       = "groq"
	ProviderAnthropic  = "anthropic"
)

const (
	OpenRouterBaseURL      = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel = "openai/gpt-oss-120b:free"
	GroqBaseURL            = "https://api.groq.com/openai/v1"
	DefaultGroqModel       = "openai/gpt-oss-120b"
)

// DefaultOrder is the provider order used when none is configured.
var DefaultOrder = []string{ProviderGemini, ProviderOpenRouter, ProviderGroq, ProviderAnthropic}

// ProviderOptions configures one provider. Every key becomes its own backend,
// so a rate-limited key falls through to the next one.
type ProviderOptions struct {
	APIKeys []string
	Model   string
	BaseURL string
}

// BuildChain creates a Failback over providers in the given order. Providers
// without keys are skipped.
func BuildChain(ctx context.Context, order []string, providers map[string]ProviderOptions) (*Failback, error) {
	if len(order) == 0 {
		order = DefaultOrder
	}
	var backends []Backend
	for _, name := range order {
		opts := providers[name]
		keys := nonEmpty(opts.APIKeys)
		if len(keys) == 0 {
			slog.Debug("Skipping language model provider without keys", "provider", name)
			continue
		}
		for i, key := range keys {
			cm, err := newProviderModel(ctx, name, key, opts)
			if err != nil {
				return nil, fmt.Errorf("failed to create %s backend: %w", name, err)
			}
			backends = append(backends, Backend{
				Name:  fmt.Sprintf("%s#%d", name, i+1),
				Model: cm,
			})
		}
	}
	if len(backends) == 0 {
		return nil, ErrNoBackends
	}
	chain := NewFailback(backends)
	slog.Info("Language model chain ready", "backends", chain.Names())
	return chain, nil
}

func newProviderModel(ctx context.Context, name, key string, opts ProviderOptions) (model.BaseChatModel, error) {
	switch name {
	case ProviderGemini:
		return NewGeminiChatModel(ctx, key, opts.Model)
	case ProviderOpenRouter:
		return NewOpenAICompatible(ctx, key, orDefault(opts.BaseURL, OpenRouterBaseURL), orDefault(opts.Model, DefaultOpenRouterModel))
	case ProviderGroq:
		return NewOpenAICompatible(ctx, key, orDefault(opts.BaseURL, GroqBaseURL), orDefault(opts.Model, DefaultGroqModel))
	case ProviderAnthropic:
		return NewAnthropicChatModel(key, opts.Model)
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

// NewOpenAICompatible builds an eino OpenAI chat model pointed at any
// OpenAI-compatible endpoint.
func NewOpenAICompatible(ctx context.Context, apiKey, baseURL, modelName string) (*openai.ChatModel, error) {
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		Model:   modelName,
		BaseURL: baseURL,
	})
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
