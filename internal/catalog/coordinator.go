package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/naveen1798kumar/acb-dashboard/internal/api"
)

// ErrNotConfirmed is returned by SubmitDelete when the confirmation callback
// declines. No network call has been made.
var ErrNotConfirmed = errors.New("catalog: destructive action not confirmed")

// ErrSuperseded is returned when a write completed but its originating view
// session was invalidated while the request was in flight. The collection
// has not been touched.
var ErrSuperseded = errors.New("catalog: response arrived after session was invalidated")

// Ops bundles the client calls the coordinator issues for one resource.
// T is the record type, D the draft payload for create/update.
type Ops[T, D any] struct {
	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, draft D) (T, error)
	Update func(ctx context.Context, id string, draft D) (T, error)
	Delete func(ctx context.Context, id string) error
	Toggle func(ctx context.Context, id, field string, value bool) (T, error)
}

// Coordinator serializes drafts into server writes and reconciles the view's
// collection with the result. On any failure the collection is left exactly
// as it was, so the caller can retry without losing state.
type Coordinator[T, D any] struct {
	mu      sync.Mutex
	view    *View[T]
	ops     Ops[T, D]
	confirm func(id string) bool

	flights singleflight.Group
	gen     atomic.Uint64
}

// NewCoordinator wires a view to its resource operations. The confirm
// callback gates deletes; a nil callback declines everything, which keeps a
// misconfigured coordinator from ever deleting silently.
func NewCoordinator[T, D any](view *View[T], ops Ops[T, D], confirm func(id string) bool) *Coordinator[T, D] {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &Coordinator[T, D]{view: view, ops: ops, confirm: confirm}
}

// View returns the coordinated view.
func (c *Coordinator[T, D]) View() *View[T] { return c.view }

// Invalidate marks every in-flight request as stale. Responses arriving
// afterwards are discarded instead of mutating the collection. Call this
// when the session navigates away from the resource.
func (c *Coordinator[T, D]) Invalidate() {
	c.gen.Add(1)
}

// Refresh refetches the collection and replaces the view's copy wholesale.
func (c *Coordinator[T, D]) Refresh(ctx context.Context) error {
	gen := c.gen.Load()
	items, err := c.ops.List(ctx)
	if err != nil {
		return err
	}
	if c.gen.Load() != gen {
		return ErrSuperseded
	}

	c.mu.Lock()
	c.view.SetItems(items)
	c.mu.Unlock()
	return nil
}

// SubmitCreate sends a create and, on success, refetches the collection
// (refetch-after-write). On failure the view is untouched and the caller's
// draft remains valid for retry.
func (c *Coordinator[T, D]) SubmitCreate(ctx context.Context, draft D) (T, error) {
	gen := c.gen.Load()
	created, err := c.ops.Create(ctx, draft)
	if err != nil {
		var zero T
		return zero, err
	}
	if c.gen.Load() != gen {
		return created, ErrSuperseded
	}

	if err := c.Refresh(ctx); err != nil {
		// The write succeeded; only the refetch failed. Surface both facts.
		return created, fmt.Errorf("created, but refreshing the list failed: %w", err)
	}
	return created, nil
}

// SubmitUpdate sends an update and patches the matching collection entry.
// A record deleted out from under the session is reported, never silently
// re-inserted.
func (c *Coordinator[T, D]) SubmitUpdate(ctx context.Context, id string, draft D) (T, error) {
	gen := c.gen.Load()
	updated, err := c.ops.Update(ctx, id, draft)
	if err != nil {
		var zero T
		if api.IsNotFound(err) {
			return zero, fmt.Errorf("record %s no longer exists: %w", id, err)
		}
		return zero, err
	}
	if c.gen.Load() != gen {
		return updated, ErrSuperseded
	}

	c.mu.Lock()
	c.view.Patch(updated)
	c.mu.Unlock()
	return updated, nil
}

// SubmitDelete asks for confirmation, then deletes. Without confirmation no
// network call is made. On success the entry is spliced out locally and the
// page re-clamped.
func (c *Coordinator[T, D]) SubmitDelete(ctx context.Context, id string) error {
	if !c.confirm(id) {
		return ErrNotConfirmed
	}

	gen := c.gen.Load()
	if err := c.ops.Delete(ctx, id); err != nil {
		return err
	}
	if c.gen.Load() != gen {
		return ErrSuperseded
	}

	c.mu.Lock()
	c.view.Remove(id)
	c.mu.Unlock()
	return nil
}

// ToggleField flips one boolean field server-side and patches the response
// into the collection. Calls for the same (id, field) pair are coalesced:
// while one request is outstanding, further callers share its result rather
// than firing a second request, so client and server cannot diverge under
// rapid double-invocation.
func (c *Coordinator[T, D]) ToggleField(ctx context.Context, id, field string, current bool) (T, error) {
	gen := c.gen.Load()
	v, err, _ := c.flights.Do(id+"\x00"+field, func() (interface{}, error) {
		return c.ops.Toggle(ctx, id, field, !current)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	item := v.(T)
	if c.gen.Load() != gen {
		return item, ErrSuperseded
	}

	c.mu.Lock()
	c.view.Patch(item)
	c.mu.Unlock()
	return item, nil
}
