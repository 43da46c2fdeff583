package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"codeberg.org/snonux/listenfill/internal/logger"
)

// Completer sends one system+user prompt pair and returns the raw reply text
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAICompleter talks to any OpenAI-compatible chat-completions endpoint
type OpenAICompleter struct {
	client *openai.Client
	model  string
	cfg    Config
}

// OpenAIClient returns a go-openai client for the endpoint in cfg
func OpenAIClient(cfg Config) *openai.Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = baseURL(cfg.APIURL)
	oc.HTTPClient = &http.Client{Timeout: cfg.timeout()}
	return openai.NewClientWithConfig(oc)
}

// GeminiClient returns a Gemini API client authenticated with cfg.APIKey
func GeminiClient(ctx context.Context, cfg Config) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// NewOpenAICompleter creates a completer for cfg.APIURL authenticated with cfg.APIKey
func NewOpenAICompleter(cfg Config) *OpenAICompleter {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAICompleter{
		client: OpenAIClient(cfg),
		model:  model,
		cfg:    cfg,
	}
}

// Complete requests a JSON-object reply at low temperature
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion: %w", ErrNoResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

// GeminiCompleter talks to the Gemini API
type GeminiCompleter struct {
	client *genai.Client
	model  string
	cfg    Config
}

// NewGeminiCompleter creates a Gemini client for cfg.APIKey
func NewGeminiCompleter(ctx context.Context, cfg Config) (*GeminiCompleter, error) {
	client, err := GeminiClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" || strings.HasPrefix(model, "gpt-") {
		model = DefaultGeminiModel
	}

	return &GeminiCompleter{client: client, model: model, cfg: cfg}, nil
}

// Complete requests a JSON reply at low temperature
func (g *GeminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout())
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](temperature),
		MaxOutputTokens:   maxTokens,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion: %w", ErrNoResponse)
	}
	return text, nil
}

// NewCompleter builds the completer for cfg.Provider wrapped in retry and
// circuit-breaker decorators
func NewCompleter(ctx context.Context, cfg Config, log *logger.Logger) (Completer, error) {
	var base Completer
	switch cfg.provider() {
	case ProviderOpenAI:
		base = NewOpenAICompleter(cfg)
	case ProviderGemini:
		g, err := NewGeminiCompleter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		base = g
	default:
		return nil, fmt.Errorf("unknown provider: %q (use openai or gemini)", cfg.Provider)
	}

	return NewBreaker(NewRetrying(base, log), log), nil
}
