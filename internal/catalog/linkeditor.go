package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// LinkState is the lifecycle of a linked-entity edit session.
type LinkState int

const (
	LinkClosed LinkState = iota
	LinkLoading
	LinkEditing
	LinkSaving
	LinkError
)

func (s LinkState) String() string {
	switch s {
	case LinkClosed:
		return "closed"
	case LinkLoading:
		return "loading"
	case LinkEditing:
		return "editing"
	case LinkSaving:
		return "saving"
	case LinkError:
		return "error"
	}
	return "unknown"
}

// LinkSource fetches and persists what a link-edit session needs.
type LinkSource[T any] struct {
	// Parent returns the ids currently associated with the parent entity.
	Parent func(ctx context.Context, parentID string) ([]string, error)
	// Items returns the full candidate universe.
	Items func(ctx context.Context) ([]T, error)
	// Categories returns filter metadata for the selection lists.
	Categories func(ctx context.Context) ([]string, error)
	// Save replaces the parent's association with the complete id set.
	Save func(ctx context.Context, parentID string, ids []string) error
}

// LinkEditor manages a draft many-to-many association as a local set,
// committed to the server only by an explicit save, always as the full
// desired set. Two admins editing the same association race last-writer-wins;
// the editor does not detect the conflict.
type LinkEditor[T any] struct {
	fields Fields[T]
	source LinkSource[T]

	mu       sync.Mutex
	state    LinkState
	parentID string
	items    []T
	cats     []string
	baseline []string
	draft    map[string]bool
	filter   FilterState
	lastErr  error
	gen      atomic.Uint64
}

// NewLinkEditor creates a closed editor.
func NewLinkEditor[T any](fields Fields[T], source LinkSource[T]) *LinkEditor[T] {
	return &LinkEditor[T]{fields: fields, source: source, state: LinkClosed}
}

// State returns the current lifecycle state.
func (e *LinkEditor[T]) State() LinkState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the failure that moved the editor into the error state.
func (e *LinkEditor[T]) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Categories returns the filter metadata loaded on open.
func (e *LinkEditor[T]) Categories() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cats
}

// Open loads the parent's association, the candidate universe, and the
// category metadata concurrently, then starts an edit session with the
// draft initialized from the server's current association. Any fetch
// failure returns the editor to closed.
func (e *LinkEditor[T]) Open(ctx context.Context, parentID string) error {
	e.mu.Lock()
	if e.state != LinkClosed {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("catalog: cannot open link editor from %s state", state)
	}
	e.state = LinkLoading
	e.mu.Unlock()

	var (
		linked []string
		items  []T
		cats   []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		linked, err = e.source.Parent(gctx, parentID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = e.source.Items(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = e.source.Categories(gctx)
		return err
	})

	err := g.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = LinkClosed
		return err
	}

	draft := make(map[string]bool, len(linked))
	for _, id := range linked {
		draft[id] = true
	}

	e.state = LinkEditing
	e.parentID = parentID
	e.items = items
	e.cats = cats
	e.baseline = linked
	e.draft = draft
	e.filter = FilterState{Fields: map[string]string{}}
	e.lastErr = nil
	return nil
}

// Toggle flips draft membership for the given id. Purely local; nothing is
// sent until Save.
func (e *LinkEditor[T]) Toggle(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != LinkEditing && e.state != LinkError {
		return fmt.Errorf("catalog: cannot toggle in %s state", e.state)
	}
	if e.draft[id] {
		delete(e.draft, id)
	} else {
		e.draft[id] = true
	}
	return nil
}

// Contains reports whether the draft currently includes the id.
func (e *LinkEditor[T]) Contains(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft[id]
}

// SetSearch narrows both partitions by search term.
func (e *LinkEditor[T]) SetSearch(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Search = q
}

// SetField narrows both partitions by a field filter; empty value clears it.
func (e *LinkEditor[T]) SetField(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if value == "" {
		delete(e.filter.Fields, name)
	} else {
		e.filter.Fields[name] = value
	}
}

// Linked returns the candidates currently in the draft, filtered by the
// session's filter state.
func (e *LinkEditor[T]) Linked() []T {
	return e.partition(true)
}

// Available returns the candidates not in the draft, filtered by the
// session's filter state.
func (e *LinkEditor[T]) Available() []T {
	return e.partition(false)
}

func (e *LinkEditor[T]) partition(member bool) []T {
	e.mu.Lock()
	defer e.mu.Unlock()

	subset := make([]T, 0, len(e.items))
	for _, item := range e.items {
		if e.draft[e.fields.Key(item)] == member {
			subset = append(subset, item)
		}
	}
	return ApplyFilters(subset, e.fields, e.filter)
}

// Draft returns the proposed association as ids, in candidate-universe
// order, with any linked ids that are absent from the universe appended in
// their original order.
func (e *LinkEditor[T]) Draft() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draftIDsLocked()
}

func (e *LinkEditor[T]) draftIDsLocked() []string {
	ids := make([]string, 0, len(e.draft))
	seen := make(map[string]bool, len(e.draft))
	for _, item := range e.items {
		id := e.fields.Key(item)
		if e.draft[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	for _, id := range e.baseline {
		if e.draft[id] && !seen[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Save sends the complete draft set in one request. On success the session
// closes and the caller should refetch the parent (reported by the return
// value). On failure the session moves to the error state with the draft
// intact, so retrying needs no re-selection. A response arriving after
// Cancel is discarded.
func (e *LinkEditor[T]) Save(ctx context.Context) (refetch bool, err error) {
	e.mu.Lock()
	if e.state != LinkEditing && e.state != LinkError {
		state := e.state
		e.mu.Unlock()
		return false, fmt.Errorf("catalog: cannot save from %s state", state)
	}
	e.state = LinkSaving
	gen := e.gen.Load()
	parentID := e.parentID
	ids := e.draftIDsLocked()
	e.mu.Unlock()

	saveErr := e.source.Save(ctx, parentID, ids)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen.Load() != gen {
		// Cancelled while the request was in flight; the session is gone
		// and its state must not be resurrected.
		return false, ErrSuperseded
	}
	if saveErr != nil {
		e.state = LinkError
		e.lastErr = saveErr
		return false, saveErr
	}

	e.reset()
	return true, nil
}

// Cancel discards the draft unconditionally and closes the session. No
// network call is made; an in-flight save response will be ignored.
func (e *LinkEditor[T]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen.Add(1)
	e.reset()
}

func (e *LinkEditor[T]) reset() {
	e.state = LinkClosed
	e.parentID = ""
	e.items = nil
	e.cats = nil
	e.baseline = nil
	e.draft = nil
	e.filter = FilterState{}
	e.lastErr = nil
}
