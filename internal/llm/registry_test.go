package llm

import (
	"context"
	"errors"
	"testing"
)

type dummyProvider struct{}

func (dummyProvider) GenerateText(_ context.Context, _ string) (string, error) { return "ok", nil }
func (dummyProvider) GetProviderName() string                                  { return "dummy" }

func TestProviderRegistry(t *testing.T) {
	RegisterProvider("dummy", func() (Provider, error) { return dummyProvider{}, nil })

	p, err := NewProvider("dummy")
	if err != nil {
		t.Fatalf("expected registered provider, got %v", err)
	}
	if p.GetProviderName() != "dummy" {
		t.Fatalf("unexpected provider name: %s", p.GetProviderName())
	}

	if _, err := NewProvider("nonexistent"); err == nil {
		t.Fatalf("expected error for unregistered provider")
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(&ProviderError{Code: ErrCodeAPIKey}) {
		t.Fatalf("api key errors must not be retried")
	}
	for _, code := range []string{ErrCodeRateLimit, ErrCodeServiceDown, ErrCodeEmptyOutput, ErrCodeTimeout} {
		if !Retryable(&ProviderError{Code: code}) {
			t.Fatalf("code %s should be retryable", code)
		}
	}
	if !Retryable(errors.New("plain error")) {
		t.Fatalf("unknown errors default to retryable")
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ProviderError{Provider: "p", Code: ErrCodeTimeout, Message: "deadline", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("expected Unwrap to expose the inner error")
	}
	if err.Error() == "" {
		t.Fatalf("expected a formatted error string")
	}
}
