package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"codeberg.org/snonux/listenfill/internal/remote"
)

// Lister handles listing available chat models
type Lister struct {
	cfg remote.Config
	out io.Writer
}

// NewLister creates a new model lister for cfg
func NewLister(cfg remote.Config) *Lister {
	return &Lister{cfg: cfg, out: os.Stdout}
}

// ChatModels returns the sorted ids of models usable for chat completion
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(l.cfg.APIKey) == "" {
		return nil, fmt.Errorf("API key not found. Set OPENAI_API_KEY environment variable or configure ai_service.api_key in .listenfill.yaml")
	}

	var ids []string
	if l.cfg.IsGemini() {
		client, err := remote.GeminiClient(ctx, l.cfg)
		if err != nil {
			return nil, err
		}
		for m, err := range client.Models.All(ctx) {
			if err != nil {
				return nil, fmt.Errorf("failed to list models: %w", err)
			}
			for _, action := range m.SupportedActions {
				if action == "generateContent" {
					ids = append(ids, strings.TrimPrefix(m.Name, "models/"))
					break
				}
			}
		}
	} else {
		models, err := remote.OpenAIClient(l.cfg).ListModels(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		for _, model := range models.Models {
			if isChatModel(model.ID) {
				ids = append(ids, model.ID)
			}
		}
	}

	sort.Strings(ids)
	return ids, nil
}

func isChatModel(id string) bool {
	id = strings.ToLower(id)
	for _, skip := range []string{"tts", "audio", "dall-e", "whisper", "embedding", "moderation", "image", "realtime", "transcribe"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.Contains(id, "gpt") || strings.Contains(id, "chat") ||
		strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4") ||
		strings.Contains(id, "llama") || strings.Contains(id, "mistral") || strings.Contains(id, "qwen") ||
		strings.Contains(id, "deepseek") || strings.Contains(id, "gemini")
}

// ListAvailableModels prints the chat models, marking the configured one
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	ids, err := l.ChatModels(ctx)
	if err != nil {
		return err
	}

	provider := "OpenAI-compatible"
	if l.cfg.IsGemini() {
		provider = "Gemini"
	}
	fmt.Fprintf(l.out, "Available %s chat models:\n", provider)
	if len(ids) == 0 {
		fmt.Fprintln(l.out, "  No chat models found")
		return nil
	}
	for _, id := range ids {
		marker := " "
		if id == l.cfg.Model {
			marker = "*"
		}
		fmt.Fprintf(l.out, " %s %s\n", marker, id)
	}
	return nil
}
