// Package saga tracks compensating actions for multi-system writes.
//
// The blob store and the metadata database cannot share a transaction, so
// each forward step that leaves external state behind registers an undo
// action. If a later step fails, Compensate runs the undos in reverse order,
// best-effort: compensation failures are logged and do not mask the error
// that triggered them.
package saga

import (
	"context"

	"github.com/rs/zerolog"
)

// CompensateFunc undoes a previously completed forward step.
type CompensateFunc func(ctx context.Context) error

type step struct {
	name string
	undo CompensateFunc
}

// Saga is an ordered list of compensating actions. Not safe for concurrent
// use; each in-flight upload owns its own Saga.
type Saga struct {
	log   zerolog.Logger
	steps []step
}

func New(log zerolog.Logger) *Saga {
	return &Saga{log: log.With().Str("component", "saga").Logger()}
}

// Push registers the undo for a forward step that just succeeded.
func (s *Saga) Push(name string, undo CompensateFunc) {
	s.steps = append(s.steps, step{name: name, undo: undo})
}

// Len returns the number of registered compensations.
func (s *Saga) Len() int {
	return len(s.steps)
}

// Compensate runs all registered undos in reverse order. Failures are
// logged, not returned; the caller's primary error dominates.
func (s *Saga) Compensate(ctx context.Context) {
	for i := len(s.steps) - 1; i >= 0; i-- {
		st := s.steps[i]
		if err := st.undo(ctx); err != nil {
			s.log.Error().Err(err).Str("step", st.name).Msg("compensation failed")
			continue
		}
		s.log.Debug().Str("step", st.name).Msg("compensated")
	}
	s.steps = s.steps[:0]
}

// Commit discards all registered compensations after the write completed.
func (s *Saga) Commit() {
	s.steps = s.steps[:0]
}
