package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/listenfill/internal/logger"
)

const (
	DefaultAttempts   = 3
	DefaultRetryDelay = 2 * time.Second
)

// Retrying retries transient network failures with a fixed delay.
// HTTP status errors and empty replies are returned immediately.
type Retrying struct {
	next     Completer
	log      *logger.Logger
	Attempts int
	Delay    time.Duration
}

// NewRetrying wraps next with the default three attempts two seconds apart
func NewRetrying(next Completer, log *logger.Logger) *Retrying {
	return &Retrying{
		next:     next,
		log:      logger.OrNop(log),
		Attempts: DefaultAttempts,
		Delay:    DefaultRetryDelay,
	}
}

// Complete calls the wrapped completer until it succeeds, fails
// permanently or runs out of attempts
func (r *Retrying) Complete(ctx context.Context, system, user string) (string, error) {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := r.next.Complete(ctx, system, user)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !IsTransient(ctx, err) {
			return "", fmt.Errorf("%w: %w", ErrNoResponse, err)
		}
		if attempt == attempts {
			break
		}

		r.log.Warn("request failed, retrying", "attempt", attempt, "max_attempts", attempts, "error", err)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrNoResponse, ctx.Err())
		case <-time.After(r.Delay):
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %w", ErrNoResponse, attempts, lastErr)
}

// IsTransient reports whether err is a timeout or connection failure worth
// retrying. Failures caused by ctx itself ending are not.
func IsTransient(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return false
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// *url.Error is itself a net.Error, so it must be looked at first
	var opErr *net.OpError
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout() || errors.As(urlErr.Err, &opErr)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
