package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tbxark/formassist/agent"
	"github.com/tbxark/formassist/config"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/llm"
	"github.com/tbxark/formassist/prompt"
	"github.com/tbxark/formassist/speech"
)

type app struct {
	registry *forms.Registry
	sessions *agent.SessionStore
	engine   *agent.Engine
	service  *agent.Service
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	chain, err := llm.BuildChain(ctx, cfg.Providers, cfg.ProviderOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to build model chain: %w", err)
	}

	transcriber, err := newTranscriber(ctx, cfg)
	if err != nil {
		return nil, err
	}

	registry := forms.Builtin()
	sessions := agent.NewMemorySessionStore(prompt.NewComposer(registry))
	engine := agent.NewEngine(sessions, chain, registry)
	return &app{
		registry: registry,
		sessions: sessions,
		engine:   engine,
		service:  agent.NewService(engine, transcriber),
	}, nil
}

// newTranscriber returns nil when no Gemini key is configured; transcription
// requests then fail as a capability error.
func newTranscriber(ctx context.Context, cfg *config.Config) (speech.Transcriber, error) {
	if cfg.Gemini.APIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, speech-to-text disabled")
		return nil, nil
	}
	g, err := speech.NewGemini(ctx, cfg.Gemini.APIKey, cfg.SpeechModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return g, nil
}
