package resource

import "context"

// Depend constructs a resource whose fetch takes the data of a parent
// resource as input. The child only dispatches a fetch while the parent is
// Ready; whenever the parent becomes Ready the child refetches using the
// parent's new data, and whenever the parent leaves Ready the child returns to
// Pending and waits.
func Depend[P, T any](parent *Resource[P], name string, fetch func(context.Context, P) (T, error), opts Options[T]) *Resource[T] {
	child := newResource(name, opts)
	child.prepare = func() (Fetcher[T], bool) {
		ps := parent.State()
		if ps.Status != Ready {
			return nil, false
		}
		return func(ctx context.Context) (T, error) {
			return fetch(ctx, ps.Data)
		}, true
	}

	// the most recent parent version and status the child reacted to.
	var (
		seenVersion uint64
		seenStatus  Status
	)
	follow := func() {
		// Lock order is always child then parent.
		child.mu.Lock()
		if child.closed {
			child.mu.Unlock()
			return
		}
		ps := parent.State()
		if ps.Version == seenVersion && ps.Status == seenStatus {
			child.mu.Unlock()
			return
		}
		seenVersion, seenStatus = ps.Version, ps.Status
		if ps.Status == Error && child.status == Pending && child.cancel == nil {
			// already waiting
			child.mu.Unlock()
			return
		}
		child.dispatch()
		child.logger.Debug("following parent resource",
			"resource", child.id,
			"parent", parent.id,
			"parent_status", ps.Status,
		)
		child.pub.Publish(UpdatedEvent, child.snapshot())
		observers := child.observers
		child.mu.Unlock()

		notify(observers)
	}

	// Observe before dispatching so that no parent change is missed; at
	// worst the child dispatches twice.
	parent.observe(follow)

	child.mu.Lock()
	ps := parent.State()
	seenVersion, seenStatus = ps.Version, ps.Status
	child.dispatch()
	child.mu.Unlock()

	return child
}
