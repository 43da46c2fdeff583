package remote

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	DefaultAPIURL      = "https://api.openai.com/v1/chat/completions"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultTimeout     = 30 * time.Second

	// BatchSize is the number of sentences sent in one batch prompt
	BatchSize = 10

	maxTokens   = 4000
	temperature = 0.1
)

var (
	// ErrNoResponse means the service could not be reached or returned nothing
	ErrNoResponse = errors.New("no response from text-generation service")
	// ErrMalformed means the reply could not be parsed even after repair
	ErrMalformed = errors.New("malformed response from text-generation service")
	// ErrUnavailable means the circuit breaker is open
	ErrUnavailable = errors.New("text-generation service temporarily unavailable")
)

// Config describes how to reach the text-generation service
type Config struct {
	APIKey   string
	APIURL   string
	Model    string
	Timeout  time.Duration
	Provider string
}

// DefaultConfig returns the OpenAI defaults without a key
func DefaultConfig() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Model:    DefaultModel,
		Timeout:  DefaultTimeout,
		Provider: ProviderOpenAI,
	}
}

// Configured reports whether the service can be called at all
func (c Config) Configured() bool {
	if strings.TrimSpace(c.APIKey) == "" {
		return false
	}
	if c.provider() == ProviderGemini {
		return true
	}
	return validAPIURL(c.APIURL)
}

// validAPIURL accepts an absolute http(s) URL without query or fragment,
// since only the path survives the conversion to a base URL
func validAPIURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.RawQuery == "" && u.Fragment == "" && !u.ForceQuery
}

// IsGemini reports whether cfg targets the Gemini API
func (c Config) IsGemini() bool {
	return c.provider() == ProviderGemini
}

func (c Config) provider() string {
	p := strings.ToLower(strings.TrimSpace(c.Provider))
	if p == "" {
		return ProviderOpenAI
	}
	return p
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// baseURL turns a chat-completions endpoint into the API base URL. Any
// other path is taken as the base itself, the client then posts to
// <base>/chat/completions.
func baseURL(apiURL string) string {
	u := strings.TrimRight(strings.TrimSpace(apiURL), "/")
	u = strings.TrimSuffix(u, "/chat/completions")
	if u == "" {
		return "https://api.openai.com/v1"
	}
	return u
}
