package llm

import (
	"context"
	"errors"
	"log/slog"
)

// CallEvent records metadata about one backend attempt.
type CallEvent struct {
	Op        string // what the call was for: targets, advice, chat
	Backend   string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// SlogObserver writes call events through a structured logger.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an Observer that logs events via logger.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"op", event.Op,
		"backend", event.Backend,
		"latency_ms", event.LatencyMs,
	}
	if event.Success {
		o.logger.Info("llm_call", attrs...)
		return
	}
	attrs = append(attrs, "error_code", event.ErrorCode)
	o.logger.Warn("llm_call", attrs...)
}

// errorCode classifies an attempt failure for observability output.
func errorCode(err error) string {
	var be *BackendError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrQuotaExhausted):
		return "QUOTA"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, ErrUnreachable):
		return "UNREACHABLE"
	case errors.As(err, &be):
		return "BACKEND"
	default:
		return "UNKNOWN"
	}
}
