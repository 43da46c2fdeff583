package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/listenfill/internal/logger"
)

const (
	breakerFailures = 5
	breakerTimeout  = 30 * time.Second
)

// Breaker fails fast with ErrUnavailable after repeated failures
type Breaker struct {
	next Completer
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next in a circuit breaker that opens after five
// consecutive failures and probes again after thirty seconds
func NewBreaker(next Completer, log *logger.Logger) *Breaker {
	log = logger.OrNop(log)
	return &Breaker{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "text-generation",
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Complete runs the wrapped completer through the breaker
func (b *Breaker) Complete(ctx context.Context, system, user string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Complete(ctx, system, user)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return "", err
	}
	return out.(string), nil
}

// State returns the breaker state for diagnostics
func (b *Breaker) State() string {
	return b.cb.State().String()
}
