package llm

import (
	"context"
	"time"
)

// DefaultAttemptTimeout bounds one backend attempt so a hung backend
// cannot stall the whole fallback sequence.
const DefaultAttemptTimeout = 8 * time.Second

// Chain tries a ranked list of backend model ids in order and returns
// the first non-empty response. Transport failures, backend-reported
// errors and empty responses all advance the loop; the most recent
// failure is surfaced when every backend is exhausted.
type Chain struct {
	client         Client
	backends       []string
	attemptTimeout time.Duration
	observer       Observer
}

// NewChain builds a fallback chain over the given backend ids, most
// capable first. The list must not be empty.
func NewChain(client Client, backends []string, attemptTimeout time.Duration, observer Observer) (*Chain, error) {
	if len(backends) == 0 {
		return nil, ErrNoBackends
	}
	if attemptTimeout <= 0 {
		attemptTimeout = DefaultAttemptTimeout
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Chain{
		client:         client,
		backends:       append([]string(nil), backends...),
		attemptTimeout: attemptTimeout,
		observer:       observer,
	}, nil
}

// Backends returns the configured backend ids in priority order.
func (c *Chain) Backends() []string {
	return append([]string(nil), c.backends...)
}

// Generate runs the fallback loop for one prompt. op tags observability
// events with the purpose of the call. Caller cancellation aborts
// between attempts; exhaustion returns *AllBackendsError.
func (c *Chain) Generate(ctx context.Context, op, prompt string) (string, error) {
	var lastErr error
	attempted := 0

	for _, backend := range c.backends {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		attempted++
		start := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		text, err := c.client.Generate(attemptCtx, backend, prompt)
		cancel()
		latency := time.Since(start).Milliseconds()

		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Op: op, Backend: backend, LatencyMs: latency, Success: true,
			})
			return text, nil
		}

		lastErr = err
		c.observer.OnCallComplete(CallEvent{
			Op: op, Backend: backend, LatencyMs: latency, Success: false,
			ErrorCode: errorCode(err),
		})
	}

	return "", &AllBackendsError{Attempted: attempted, LastErr: lastErr}
}
