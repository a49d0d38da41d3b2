// Package resource tracks the asynchronous fetching of remote data.
//
// A Resource is always in exactly one of three states: Pending, Ready or
// Error. Each fetch attempt is tagged with a version; an attempt's result is
// applied only if no newer attempt has since been dispatched, i.e. the last
// request wins, not the last response.
package resource

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrClosed is returned when operating on a closed resource.
var ErrClosed = errors.New("resource closed")

// Fetcher retrieves a resource's data. It should return promptly once ctx is
// canceled, but its result is discarded regardless.
type Fetcher[T any] func(ctx context.Context) (T, error)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Options[T any] struct {
	// Publisher receives an event for every observable state change.
	Publisher Publisher[State[T]]
	Logger    Logger
	// Timeout bounds each fetch attempt. An attempt exceeding it fails with
	// context.DeadlineExceeded. Zero means no timeout.
	Timeout time.Duration
	// Now overrides the clock used for State.UpdatedAt.
	Now func() time.Time
}

// Resource manages the fetch lifecycle of remote data of type T.
type Resource[T any] struct {
	id      ID
	pub     Publisher[State[T]]
	logger  Logger
	timeout time.Duration
	now     func() time.Time

	// prepare returns the fetcher for the next attempt, or false if an attempt
	// cannot be dispatched yet.
	prepare func() (Fetcher[T], bool)

	mu        sync.Mutex
	status    Status
	data      T
	err       error
	version   uint64
	attempts  int
	updatedAt time.Time
	cancel    context.CancelFunc
	closed    bool
	observers []func()

	// base context for attempts, canceled upon close.
	ctx  context.Context
	stop context.CancelFunc
	// tracks in-flight attempts, including superseded ones.
	wg sync.WaitGroup
}

// New constructs a resource and immediately dispatches its first fetch.
func New[T any](name string, fetcher Fetcher[T], opts Options[T]) *Resource[T] {
	r := newResource(name, opts)
	r.prepare = func() (Fetcher[T], bool) {
		return fetcher, true
	}
	r.mu.Lock()
	r.dispatch()
	r.mu.Unlock()
	return r
}

func newResource[T any](name string, opts Options[T]) *Resource[T] {
	r := &Resource[T]{
		id:      NewID(name),
		pub:     opts.Publisher,
		logger:  opts.Logger,
		timeout: opts.Timeout,
		now:     opts.Now,
		status:  Pending,
	}
	if r.pub == nil {
		r.pub = nopPublisher[State[T]]{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	r.ctx, r.stop = context.WithCancel(context.Background())
	return r
}

func (r *Resource[T]) ID() ID { return r.id }

// State returns a snapshot of the resource.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshot()
}

// IsPending is true if the loading indicator should be shown.
func (r *Resource[T]) IsPending() bool {
	return r.State().IsPending()
}

// Err returns the error from the most recent attempt if the resource is in
// the Error state, otherwise nil.
func (r *Resource[T]) Err() error {
	return r.State().Err
}

// Data returns the fetched data if the resource is Ready, otherwise the zero
// value of T.
func (r *Resource[T]) Data() T {
	return r.State().Data
}

// Retry dispatches a new fetch attempt, superseding any outstanding attempt.
// Visible data is cleared until the new attempt completes.
func (r *Resource[T]) Retry() error {
	return r.restart(UpdatedEvent, func() {}, "retrying")
}

// Reset returns the resource to its initial condition and dispatches a new
// fetch attempt.
func (r *Resource[T]) Reset() error {
	return r.restart(ResetEvent, func() {
		r.attempts = 0
		r.updatedAt = time.Time{}
	}, "resetting")
}

// Invalidate marks the resource's data stale and refetches it, e.g. after a
// mutation of the remote data.
func (r *Resource[T]) Invalidate(reason string) error {
	return r.restart(UpdatedEvent, func() {}, "invalidating", "reason", reason)
}

func (r *Resource[T]) restart(typ EventType, before func(), msg string, args ...any) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	before()
	r.dispatch()
	r.logger.Debug(msg+" resource", append([]any{"resource", r.id, "version", r.version}, args...)...)
	r.pub.Publish(typ, r.snapshot())
	observers := r.observers
	r.mu.Unlock()

	notify(observers)
	return nil
}

// Wait blocks until all in-flight fetch attempts have finished.
func (r *Resource[T]) Wait() {
	r.wg.Wait()
}

// Close cancels in-flight fetch attempts and waits for them to finish. The
// resource is no longer updated once closed.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.stop()
	r.mu.Unlock()

	r.wg.Wait()
}

// dispatch starts a new attempt. Must be called with the mutex held.
func (r *Resource[T]) dispatch() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.version++
	r.status = Pending
	r.data = *new(T)
	r.err = nil

	fetch, ok := r.prepare()
	if !ok {
		r.logger.Debug("resource awaiting dependency", "resource", r.id, "version", r.version)
		return
	}
	r.attempts++

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(r.ctx, r.timeout)
	} else {
		ctx, cancel = context.WithCancel(r.ctx)
	}
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(ctx, cancel, fetch, r.version)
}

func (r *Resource[T]) run(ctx context.Context, cancel context.CancelFunc, fetch Fetcher[T], version uint64) {
	defer r.wg.Done()
	defer cancel()

	data, err := fetch(ctx)

	r.mu.Lock()
	if r.closed || version != r.version {
		r.mu.Unlock()
		r.logger.Debug("discarding superseded result", "resource", r.id, "version", version)
		return
	}
	r.cancel = nil
	r.updatedAt = r.now()
	if err != nil {
		r.status = Error
		r.err = err
		r.data = *new(T)
		r.logger.Error("fetching resource", "resource", r.id, "version", version, "error", err)
	} else {
		r.status = Ready
		r.data = data
		r.logger.Debug("fetched resource", "resource", r.id, "version", version)
	}
	r.pub.Publish(UpdatedEvent, r.snapshot())
	observers := r.observers
	r.mu.Unlock()

	notify(observers)
}

// observe registers fn to be called, without any lock held, after every
// state change.
func (r *Resource[T]) observe(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.observers = append(r.observers, fn)
}

func (r *Resource[T]) snapshot() State[T] {
	s := State[T]{
		ID:        r.id,
		Status:    r.status,
		Version:   r.version,
		Attempts:  r.attempts,
		UpdatedAt: r.updatedAt,
	}
	switch r.status {
	case Ready:
		s.Data = r.data
	case Error:
		s.Err = r.err
	}
	return s
}

func notify(observers []func()) {
	for _, fn := range observers {
		fn()
	}
}
