package audio

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/listenfill/internal/logger"
	"codeberg.org/snonux/listenfill/internal/remote"
)

// Provider names
const (
	ProviderAuto   = "auto"
	ProviderOpenAI = "openai"
	ProviderESpeak = "espeak"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds the speech settings
type Config struct {
	Provider string // "auto", "openai" or "espeak"
	Language string // exercise language, e.g. "Spanish"
	CacheDir string

	// AI supplies the key and endpoint for the OpenAI speech API
	AI          remote.Config
	OpenAIModel string  // "tts-1", "tts-1-hd" or "gpt-4o-mini-tts"
	OpenAIVoice string  // "alloy", "nova", ...
	OpenAISpeed float64 // 0.25 to 4.0

	ESpeakSpeed int // words per minute, 0 keeps the default
}

// DefaultConfig returns the default speech configuration
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderAuto,
		Language:    "English",
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAIVoice: "alloy",
		OpenAISpeed: 0.9,
	}
}

// NewProvider creates the provider selected by cfg. "auto" prefers OpenAI
// when an OpenAI key is configured and falls back to espeak-ng.
func NewProvider(cfg Config, log *logger.Logger) (Provider, error) {
	log = logger.OrNop(log)
	openAIUsable := cfg.AI.Configured() && !cfg.AI.IsGemini()

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI:
		if !openAIUsable {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(cfg), nil
	case ProviderESpeak:
		return newESpeak(cfg), nil
	case ProviderAuto, "":
		espeak := newESpeak(cfg)
		if !openAIUsable {
			return espeak, nil
		}
		return NewProviderWithFallback(NewOpenAIProvider(cfg), espeak, log), nil
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", cfg.Provider)
	}
}

func newESpeak(cfg Config) *ESpeakProvider {
	e := NewESpeakProvider(cfg.Language)
	if cfg.ESpeakSpeed > 0 {
		e.SetSpeed(cfg.ESpeakSpeed)
	}
	return e
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	log      *logger.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, log *logger.Logger) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		log:      logger.OrNop(log),
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	err := p.primary.GenerateAudio(ctx, text, outputFile)
	if err == nil || ctx.Err() != nil {
		return err
	}
	p.log.Warn("primary speech provider failed",
		"provider", p.primary.Name(), "fallback", p.fallback.Name(), "error", err)
	return p.fallback.GenerateAudio(ctx, text, outputFile)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}
	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}
	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v", primaryErr, fallbackErr)
}
