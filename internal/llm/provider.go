package llm

import "context"

// Provider is the raw text-generation backend. The gateway package wraps it
// with retry/fallback semantics; nothing else should call a Provider directly.
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GetProviderName() string
}

// ProviderError is an error from an LLM provider.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Common error codes shared across providers.
const (
	ErrCodeAPIKey      = "invalid_api_key"
	ErrCodeRateLimit   = "rate_limit_exceeded"
	ErrCodeServiceDown = "service_unavailable"
	ErrCodeEmptyOutput = "empty_output"
	ErrCodeTimeout     = "timeout"
)

// Retryable reports whether an error is worth another attempt. Missing or
// rejected API keys are configuration errors and never retried.
func Retryable(err error) bool {
	perr, ok := err.(*ProviderError)
	if !ok {
		return true
	}
	return perr.Code != ErrCodeAPIKey
}
