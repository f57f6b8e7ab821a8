package event

import (
	"context"
	"errors"
)

// Sink receives event records from the core.
//
// Implementations must be safe for concurrent use. Emit is called
// synchronously after the state change that produced the event has
// committed; a returned error is reported by the caller but does not
// undo the change.
type Sink interface {
	Emit(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, e Event) error

// Emit calls f(ctx, e).
func (f SinkFunc) Emit(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// NopSink discards all events. Used when no collaborator is wired.
type NopSink struct{}

// Emit discards the event.
func (NopSink) Emit(context.Context, Event) error { return nil }

// MultiSink fans an event out to several sinks.
//
// Every sink sees every event even if an earlier one fails; the errors
// are joined so the caller can log each failure.
type MultiSink []Sink

// Emit delivers e to all sinks in order.
func (m MultiSink) Emit(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
