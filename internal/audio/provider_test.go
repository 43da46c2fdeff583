package audio

import (
	"context"
	"errors"
	"os"
	"testing"

	"codeberg.org/snonux/listenfill/internal/remote"
)

// mockProvider implements Provider interface for testing
type mockProvider struct {
	name          string
	generateErr   error
	availableErr  error
	generateCalls int
	content       []byte
}

func (m *mockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.generateCalls++
	if m.generateErr != nil {
		return m.generateErr
	}
	if m.content != nil {
		return os.WriteFile(outputFile, m.content, 0644)
	}
	return nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) IsAvailable() error {
	return m.availableErr
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider != ProviderAuto {
		t.Errorf("Expected provider 'auto', got '%s'", config.Provider)
	}
	if config.OpenAIModel != "gpt-4o-mini-tts" {
		t.Errorf("Expected OpenAI model 'gpt-4o-mini-tts', got '%s'", config.OpenAIModel)
	}
	if config.OpenAIVoice != "alloy" {
		t.Errorf("Expected OpenAI voice 'alloy', got '%s'", config.OpenAIVoice)
	}
	if config.OpenAISpeed != 0.9 {
		t.Errorf("Expected OpenAI speed 0.9, got %f", config.OpenAISpeed)
	}
}

func TestNewProvider(t *testing.T) {
	openAI := remote.DefaultConfig()
	openAI.APIKey = "test-key"

	gemini := remote.Config{APIKey: "test-key", Provider: remote.ProviderGemini}

	tests := []struct {
		name     string
		provider string
		ai       remote.Config
		wantName string
		wantErr  bool
	}{
		{"auto with key", ProviderAuto, openAI, "openai (fallback: espeak-ng)", false},
		{"auto without key", ProviderAuto, remote.DefaultConfig(), "espeak-ng", false},
		{"empty means auto", "", remote.DefaultConfig(), "espeak-ng", false},
		{"auto with gemini key", ProviderAuto, gemini, "espeak-ng", false},
		{"openai", ProviderOpenAI, openAI, "openai", false},
		{"openai without key", ProviderOpenAI, remote.DefaultConfig(), "", true},
		{"espeak", "ESpeak", openAI, "espeak-ng", false},
		{"unknown", "festival", openAI, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Provider = tt.provider
			cfg.AI = tt.ai

			p, err := NewProvider(cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNewProviderESpeakSpeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderESpeak
	cfg.Language = "German"
	cfg.ESpeakSpeed = 120

	p, err := NewProvider(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := p.(*ESpeakProvider)
	if !ok {
		t.Fatalf("NewProvider() = %T, want *ESpeakProvider", p)
	}
	if e.speed != 120 || e.voice != "de" {
		t.Errorf("espeak speed/voice = %d/%q, want 120/de", e.speed, e.voice)
	}
}

func TestProviderWithFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("primary succeeds", func(t *testing.T) {
		primary := &mockProvider{name: "primary"}
		fallback := &mockProvider{name: "fallback"}
		p := NewProviderWithFallback(primary, fallback, nil)

		if err := p.GenerateAudio(ctx, "hello", "out.wav"); err != nil {
			t.Errorf("GenerateAudio() error = %v", err)
		}
		if primary.generateCalls != 1 || fallback.generateCalls != 0 {
			t.Errorf("calls = %d/%d, want 1/0", primary.generateCalls, fallback.generateCalls)
		}
	})

	t.Run("primary fails", func(t *testing.T) {
		primary := &mockProvider{name: "primary", generateErr: errors.New("boom")}
		fallback := &mockProvider{name: "fallback"}
		p := NewProviderWithFallback(primary, fallback, nil)

		if err := p.GenerateAudio(ctx, "hello", "out.wav"); err != nil {
			t.Errorf("GenerateAudio() error = %v", err)
		}
		if fallback.generateCalls != 1 {
			t.Errorf("fallback calls = %d, want 1", fallback.generateCalls)
		}
	})

	t.Run("cancelled context skips fallback", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		primary := &mockProvider{name: "primary", generateErr: context.Canceled}
		fallback := &mockProvider{name: "fallback"}
		p := NewProviderWithFallback(primary, fallback, nil)

		if err := p.GenerateAudio(cctx, "hello", "out.wav"); !errors.Is(err, context.Canceled) {
			t.Errorf("GenerateAudio() error = %v, want context.Canceled", err)
		}
		if fallback.generateCalls != 0 {
			t.Error("fallback should not run after cancellation")
		}
	})

	t.Run("availability", func(t *testing.T) {
		down := errors.New("down")
		p := NewProviderWithFallback(&mockProvider{name: "a", availableErr: down}, &mockProvider{name: "b"}, nil)
		if err := p.IsAvailable(); err != nil {
			t.Errorf("IsAvailable() = %v, want nil when fallback is up", err)
		}
		p = NewProviderWithFallback(&mockProvider{name: "a", availableErr: down}, &mockProvider{name: "b", availableErr: down}, nil)
		if err := p.IsAvailable(); err == nil {
			t.Error("IsAvailable() = nil, want error when both are down")
		}
	})
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		text    string
		wantErr bool
	}{
		{"The cat sat.", false},
		{"¿Qué tal?", false},
		{"猫が座った", false},
		{"42", false},
		{"", true},
		{"   ", true},
		{"... !!", true},
	}
	for _, tt := range tests {
		if err := ValidateText(tt.text); (err != nil) != tt.wantErr {
			t.Errorf("ValidateText(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
		}
	}
}
