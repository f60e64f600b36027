// Package statemachine implements the profiling session state
// machine (spec §4.C7): a single atomic holding the state tag,
// transitions gated by the legal-transition table and applied with a
// compare-and-swap loop so concurrent writers serialise without a
// mutex.
package statemachine

import (
	"fmt"
	"sync/atomic"

	"github.com/ghaddam/armnn/internal/domain"
)

// ErrInvalidStateTransition is returned when a caller asks for an edge
// not present in domain.IsLegalTransition. The state is left unchanged.
var ErrInvalidStateTransition = fmt.Errorf("armnn: invalid state transition")

// StateMachine holds the current ProfilingState behind a single atomic
// word. The zero value starts in StateUninitialised; use New to start
// somewhere else (the service needs NotConnected when profiling is
// enabled from construction).
type StateMachine struct {
	state atomic.Uint32
}

// New returns a state machine initialised to the given state.
func New(initial domain.ProfilingState) *StateMachine {
	sm := &StateMachine{}
	sm.state.Store(uint32(initial))
	return sm
}

// CurrentState is a pure read; safe for any number of concurrent
// readers and writers.
func (sm *StateMachine) CurrentState() domain.ProfilingState {
	return domain.ProfilingState(sm.state.Load())
}

// TransitionToState attempts to move from whatever the current state
// is to target. It retries the compare-and-swap against the legal
// table until it either succeeds or observes a current state from
// which target is illegal, in which case it fails without mutating
// state. A no-op transition (target == current) always succeeds.
func (sm *StateMachine) TransitionToState(target domain.ProfilingState) error {
	for {
		current := domain.ProfilingState(sm.state.Load())
		if !domain.IsLegalTransition(current, target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, current, target)
		}
		if sm.state.CompareAndSwap(uint32(current), uint32(target)) {
			return nil
		}
	}
}
