package engine

import (
	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine/matcher"
)

const defaultLaneQueueSize = 64

// Option configures an Engine.
type Option func(*Engine)

// WithTiming replaces the default trigger windows.
func WithTiming(t matcher.Timing) Option {
	return func(e *Engine) {
		e.timing = t
	}
}

// WithDispatcher replaces the per-key-map async dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(e *Engine) {
		if d != nil {
			e.dispatcher = d
		}
	}
}

// WithLaneQueueSize sets the buffer of each async dispatch lane.
// Ignored when WithDispatcher is used.
func WithLaneQueueSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.laneQueueSize = n
		}
	}
}

// WithObserver receives a record for every execution.
func WithObserver(o port.DispatchObserver) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithErrorHandler is called once for every failed execution.
func WithErrorHandler(fn func(*entity.ExecutionError)) Option {
	return func(e *Engine) {
		e.onError = fn
	}
}

// WithMaxConsecutiveFailures cancels a running chain after n failed
// executions in a row. Zero disables the limit.
func WithMaxConsecutiveFailures(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxFailures = n
		}
	}
}

// WithPreemptPolicy lets a match cancel the running chains of other key maps.
func WithPreemptPolicy(p PreemptPolicy) Option {
	return func(e *Engine) {
		e.preempt = p
	}
}
