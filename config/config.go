// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tbxark/formassist/llm"
)

// Config holds all application configuration.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// Providers is the order the language-model chain tries providers in.
	Providers  []string
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Groq       ProviderConfig
	Anthropic  ProviderConfig

	SpeechModel string
	Session     SessionConfig
}

// ProviderConfig is one language-model provider. BackupAPIKey is tried after
// APIKey when the first is rejected or rate limited.
type ProviderConfig struct {
	APIKey       string
	BackupAPIKey string
	Model        string
	BaseURL      string
}

// SessionConfig controls idle-session expiry. A zero IdleTTL keeps sessions
// for the life of the process.
type SessionConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

var envBindings = map[string]string{
	"port":                      "PORT",
	"log.level":                 "LOG_LEVEL",
	"log.format":                "LOG_FORMAT",
	"llm.providers":             "LLM_PROVIDERS",
	"gemini.api_key":            "GEMINI_API_KEY",
	"gemini.model":              "GEMINI_MODEL",
	"openrouter.api_key":        "OPENROUTER_API_KEY",
	"openrouter.backup_api_key": "OPENROUTER_API_KEY_2",
	"openrouter.model":          "OPENROUTER_MODEL",
	"groq.api_key":              "GROQ_API_KEY",
	"groq.backup_api_key":       "GROQ_API_KEY_2",
	"groq.model":                "GROQ_MODEL",
	"anthropic.api_key":         "ANTHROPIC_API_KEY",
	"anthropic.model":           "ANTHROPIC_MODEL",
	"speech.model":              "SPEECH_MODEL",
	"session.idle_ttl":          "SESSION_IDLE_TTL",
	"session.sweep_interval":    "SESSION_SWEEP_INTERVAL",
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No .env file found, using environment variables")
			return nil
		}
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads an optional config file (any format viper understands) and the
// environment. Environment variables win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:        v.GetString("port"),
		LogLevel:    strings.ToLower(v.GetString("log.level")),
		LogFormat:   strings.ToLower(v.GetString("log.format")),
		Providers:   splitList(v.GetStringSlice("llm.providers")),
		Gemini:      providerConfig(v, "gemini"),
		OpenRouter:  providerConfig(v, "openrouter"),
		Groq:        providerConfig(v, "groq"),
		Anthropic:   providerConfig(v, "anthropic"),
		SpeechModel: v.GetString("speech.model"),
		Session: SessionConfig{
			IdleTTL:       v.GetDuration("session.idle_ttl"),
			SweepInterval: v.GetDuration("session.sweep_interval"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("llm.providers", llm.DefaultOrder)
	v.SetDefault("gemini.model", llm.DefaultGeminiModel)
	v.SetDefault("openrouter.model", llm.DefaultOpenRouterModel)
	v.SetDefault("openrouter.base_url", llm.OpenRouterBaseURL)
	v.SetDefault("groq.model", llm.DefaultGroqModel)
	v.SetDefault("groq.base_url", llm.GroqBaseURL)
	v.SetDefault("anthropic.model", llm.DefaultAnthropicModel)
	v.SetDefault("speech.model", llm.DefaultGeminiModel)
	v.SetDefault("session.idle_ttl", time.Duration(0))
	v.SetDefault("session.sweep_interval", time.Minute)
}

func providerConfig(v *viper.Viper, name string) ProviderConfig {
	return ProviderConfig{
		APIKey:       v.GetString(name + ".api_key"),
		BackupAPIKey: v.GetString(name + ".backup_api_key"),
		Model:        v.GetString(name + ".model"),
		BaseURL:      v.GetString(name + ".base_url"),
	}
}

// splitList accepts both a real list and a single comma separated value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if len(c.Providers) == 0 {
		return fmt.Errorf("LLM_PROVIDERS cannot be empty")
	}
	for _, p := range c.Providers {
		switch p {
		case llm.ProviderGemini, llm.ProviderOpenRouter, llm.ProviderGroq, llm.ProviderAnthropic:
		default:
			return fmt.Errorf("unknown provider %q in LLM_PROVIDERS", p)
		}
	}
	if c.Session.IdleTTL < 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be >= 0")
	}
	if c.Session.IdleTTL > 0 && c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be > 0 when SESSION_IDLE_TTL is set")
	}
	return nil
}

// ProviderOptions converts the provider sections for llm.BuildChain.
func (c *Config) ProviderOptions() map[string]llm.ProviderOptions {
	convert := func(p ProviderConfig) llm.ProviderOptions {
		return llm.ProviderOptions{
			APIKeys: []string{p.APIKey, p.BackupAPIKey},
			Model:   p.Model,
			BaseURL: p.BaseURL,
		}
	}
	return map[string]llm.ProviderOptions{
		llm.ProviderGemini:     convert(c.Gemini),
		llm.ProviderOpenRouter: convert(c.OpenRouter),
		llm.ProviderGroq:       convert(c.Groq),
		llm.ProviderAnthropic:  convert(c.Anthropic),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
