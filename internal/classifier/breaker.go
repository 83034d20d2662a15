package classifier

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/feedworks/sentiserver/pkg/types"
)

// Compile-time interface satisfaction check.
var _ Classifier = (*Breaker)(nil)

// Breaker wraps a Classifier with a circuit breaker. When the classifier
// service degrades, failing fast keeps a batch from burning its whole
// invocation deadline on doomed calls; redelivery picks the records up once
// the circuit closes again.
type Breaker struct {
	inner Classifier
	cb    *gobreaker.CircuitBreaker
}

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	// ConsecutiveFailures before the circuit opens. Default 5.
	ConsecutiveFailures uint32
	// Cooldown is how long the circuit stays open. Default 30s.
	Cooldown time.Duration
}

// NewBreaker wraps inner with a circuit breaker.
func NewBreaker(inner Classifier, settings BreakerSettings) *Breaker {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "classifier",
		MaxRequests: 1,
		Timeout:     settings.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
	})
	return &Breaker{inner: inner, cb: cb}
}

// Detect delegates to the wrapped classifier through the breaker. While the
// circuit is open it returns gobreaker.ErrOpenState without calling out.
func (b *Breaker) Detect(ctx context.Context, text string) (types.Result, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Detect(ctx, text)
	})
	if err != nil {
		return types.Result{}, err
	}
	return v.(types.Result), nil
}
