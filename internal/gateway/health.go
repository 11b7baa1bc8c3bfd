package gateway

import "sync"

// Status is the advisory provider health state.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusUnknown Status = "unknown"
)

// offlineThreshold is the number of consecutive provider failures after
// which the status flips to offline. A single success flips it back.
const offlineThreshold = 2

// Health tracks provider health for the status endpoint. It is advisory
// telemetry only: single writer (the gateway), many readers, last-write-wins.
// It is an injectable object rather than package state so tests can build
// isolated instances.
type Health struct {
	mu           sync.RWMutex
	status       Status
	configured   bool
	fallbackMode bool
	lastError    string
	failures     int
}

// Snapshot is a point-in-time read of the health state.
type Snapshot struct {
	Status       Status
	Configured   bool
	FallbackMode bool
	LastError    string
}

func NewHealth(configured bool) *Health {
	h := &Health{
		status:     StatusUnknown,
		configured: configured,
	}
	if !configured {
		// no key: permanently offline until restart, nothing to probe
		h.status = StatusOffline
		h.fallbackMode = true
		h.lastError = "provider not configured"
	}
	return h
}

// RecordSuccess marks a successful provider call.
func (h *Health) RecordSuccess() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = StatusOnline
	h.fallbackMode = false
	h.lastError = ""
	h.failures = 0
}

// RecordFailure marks one failed provider attempt.
func (h *Health) RecordFailure(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures++
	if err != nil {
		h.lastError = err.Error()
	}
	if h.failures >= offlineThreshold {
		h.status = StatusOffline
	}
}

// RecordFallback marks that a caller was served the deterministic fallback.
func (h *Health) RecordFallback() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fallbackMode = true
}

func (h *Health) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Snapshot{
		Status:       h.status,
		Configured:   h.configured,
		FallbackMode: h.fallbackMode,
		LastError:    h.lastError,
	}
}
