package resource

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type result[T any] struct {
	data T
	err  error
}

// call is a single invocation of a fake fetcher, resolved by the test.
type call[T any] struct {
	ctx    context.Context
	input  any
	result chan result[T]
}

func (c *call[T]) resolve(data T) { c.result <- result[T]{data: data} }

func (c *call[T]) reject(err error) { c.result <- result[T]{err: err} }

// fakeFetcher hands each fetch to the test via a channel and blocks until the
// test resolves it.
type fakeFetcher[T any] struct {
	calls chan *call[T]
	// cancelable makes a fetch return as soon as its context is done.
	cancelable bool
}

func newFakeFetcher[T any]() *fakeFetcher[T] {
	return &fakeFetcher[T]{calls: make(chan *call[T], 100)}
}

func (f *fakeFetcher[T]) fetch(ctx context.Context) (T, error) {
	return f.fetchWithInput(ctx, nil)
}

func (f *fakeFetcher[T]) fetchWithInput(ctx context.Context, input any) (T, error) {
	c := &call[T]{ctx: ctx, input: input, result: make(chan result[T], 1)}
	f.calls <- c
	if f.cancelable {
		select {
		case res := <-c.result:
			return res.data, res.err
		case <-ctx.Done():
			return *new(T), ctx.Err()
		}
	}
	res := <-c.result
	return res.data, res.err
}

// next returns the next fetch invocation, failing the test if there isn't one
// within a second.
func (f *fakeFetcher[T]) next(t *testing.T) *call[T] {
	t.Helper()

	select {
	case c := <-f.calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for fetch")
		return nil
	}
}

// none asserts no fetch has been invoked.
func (f *fakeFetcher[T]) none(t *testing.T) {
	t.Helper()

	select {
	case <-f.calls:
		t.Fatal("unexpected fetch")
	case <-time.After(50 * time.Millisecond):
	}
}

// recorder is a publisher that records every event.
type recorder[T any] struct {
	mu     sync.Mutex
	events []Event[State[T]]
}

func (r *recorder[T]) Publish(typ EventType, payload State[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, NewEvent(typ, payload))
}

func (r *recorder[T]) list() []Event[State[T]] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event[State[T]](nil), r.events...)
}

func waitForStatus[T any](t *testing.T, r *Resource[T], want Status) State[T] {
	t.Helper()

	require.Eventually(t, func() bool {
		return r.State().Status == want
	}, time.Second, time.Millisecond)
	return r.State()
}
