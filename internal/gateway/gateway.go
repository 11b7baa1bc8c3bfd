package gateway

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mockmate/interview/internal/llm"
)

const (
	// FallbackText is the deterministic reply served when the provider is
	// exhausted or unconfigured. The conversation layer inserts it as a
	// normal interviewer message so the session keeps moving.
	FallbackText = "Thanks for sharing that. Let's keep going - walk me through your thinking on the current question, step by step."

	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2
	defaultBackoff = 500 * time.Millisecond
)

// Source says which path produced a Result.
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
)

// Result is the explicit outcome of a completion: generated text or the
// deterministic fallback. Callers branch on Source instead of catching errors.
type Result struct {
	Text   string
	Source Source
}

func (r Result) IsFallback() bool { return r.Source == SourceFallback }

// Gateway wraps an llm.Provider with bounded timeouts, retry with backoff,
// fallback replies, and health tracking. A nil provider means the service
// is unconfigured and every call is served from fallback.
type Gateway struct {
	provider llm.Provider
	health   *Health
	logger   *zap.Logger
	timeout  time.Duration
	retries  int
	backoff  time.Duration
}

// Option tweaks gateway behavior; used mostly by tests.
type Option func(*Gateway)

func WithTimeout(d time.Duration) Option { return func(g *Gateway) { g.timeout = d } }
func WithRetries(n int) Option           { return func(g *Gateway) { g.retries = n } }
func WithBackoff(d time.Duration) Option { return func(g *Gateway) { g.backoff = d } }

func New(provider llm.Provider, health *Health, logger *zap.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		provider: provider,
		health:   health,
		logger:   logger,
		timeout:  DefaultTimeout,
		retries:  DefaultRetries,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Health exposes the injectable health state for the status endpoint.
func (g *Gateway) Health() *Health { return g.health }

// Complete runs one completion with retry, and degrades to the deterministic
// fallback instead of returning an error. The only error returned is the
// caller's own context cancellation.
func (g *Gateway) Complete(ctx context.Context, prompt string) (Result, error) {
	if g.provider == nil {
		g.health.RecordFallback()
		return Result{Text: FallbackText, Source: SourceFallback}, nil
	}

	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(g.backoff * time.Duration(attempt)):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		text, err := g.provider.GenerateText(callCtx, prompt)
		cancel()

		if err == nil {
			g.health.RecordSuccess()
			return Result{Text: text, Source: SourceProvider}, nil
		}

		lastErr = err
		g.health.RecordFailure(err)
		g.logger.Warn("provider call failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		if !llm.Retryable(err) {
			break
		}
	}

	g.health.RecordFallback()
	g.logger.Warn("provider exhausted, serving fallback", zap.Error(lastErr))
	return Result{Text: FallbackText, Source: SourceFallback}, nil
}
