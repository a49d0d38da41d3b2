package resource

import "time"

// State is a snapshot of a resource, safe to hand to a view.
type State[T any] struct {
	ID     ID
	Status Status
	// Data is the zero value unless Status is Ready.
	Data T
	// Err is nil unless Status is Error.
	Err error
	// Version identifies the fetch attempt that produced the state.
	Version uint64
	// Attempts is the number of fetch attempts dispatched since the resource
	// was created or last reset.
	Attempts int
	// UpdatedAt is when the most recent attempt completed; zero if no attempt
	// has completed since creation or reset.
	UpdatedAt time.Time
}

func (s State[T]) IsPending() bool { return s.Status == Pending }

func (s State[T]) IsReady() bool { return s.Status == Ready }

func (s State[T]) IsError() bool { return s.Status == Error }
