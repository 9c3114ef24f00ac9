// Package catalog holds the client-side state logic of the dashboard: the
// list view (search, filter, sort, paginate over a fetched collection), the
// mutation coordinator that keeps the collection consistent with server
// writes, and the linked-product editor for events.
//
// Everything in this package operates on in-memory snapshots. The server is
// the source of truth; the collection held here is a cache replaced after
// successful writes.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// FilterState is the active search term plus per-field equality filters.
// An empty filter value means "any".
type FilterState struct {
	Search string
	Fields map[string]string
}

// SortState selects a field and direction. The zero value means
// server/insertion order.
type SortState struct {
	Field      string
	Descending bool
}

// PageState is a fixed page size plus the 1-based current page.
type PageState struct {
	Size    int
	Current int
}

// Fields tells the view how to read an item: its stable key, the text
// considered by search, and named field values for filtering and sorting.
// Less comparators are optional; filtering falls back to string comparison
// of field values when one is absent.
type Fields[T any] struct {
	Key        func(T) string
	SearchText func(T) []string
	Value      func(T, string) string
	Less       map[string]func(a, b T) bool
}

// Page is one visible slice of a filtered collection.
type Page[T any] struct {
	Items      []T
	Current    int
	TotalPages int
	Total      int // filtered item count across all pages
}

// ApplyFilters returns the items passing the search term and every active
// field filter. Predicates are pure and combined with AND; the input slice
// is never modified.
func ApplyFilters[T any](items []T, fields Fields[T], f FilterState) []T {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if search != "" && !matchesSearch(item, fields, search) {
			continue
		}
		if !matchesFields(item, fields, f.Fields) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch[T any](item T, fields Fields[T], search string) bool {
	for _, text := range fields.SearchText(item) {
		if strings.Contains(strings.ToLower(text), search) {
			return true
		}
	}
	return false
}

func matchesFields[T any](item T, fields Fields[T], active map[string]string) bool {
	for name, want := range active {
		if want == "" {
			continue
		}
		if fields.Value(item, name) != want {
			return false
		}
	}
	return true
}

// ApplySort returns a stably sorted copy; ties keep their original relative
// order. A zero SortState returns the items unchanged.
func ApplySort[T any](items []T, fields Fields[T], s SortState) []T {
	if s.Field == "" {
		return items
	}

	less := fields.Less[s.Field]
	if less == nil {
		field := s.Field
		less = func(a, b T) bool {
			return fields.Value(a, field) < fields.Value(b, field)
		}
	}

	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if s.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// TotalPages returns the page count for n items: at least one page, even
// when the collection is empty.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage pins a requested page into [1, totalPages].
func ClampPage(current, totalPages int) int {
	if current < 1 {
		return 1
	}
	if current > totalPages {
		return totalPages
	}
	return current
}

// Paginate slices items for the requested page. Out-of-range pages are
// clamped, never an error.
func Paginate[T any](items []T, p PageState) Page[T] {
	if p.Size <= 0 {
		panic(fmt.Sprintf("catalog: page size must be positive, got %d", p.Size))
	}

	total := TotalPages(len(items), p.Size)
	current := ClampPage(p.Current, total)

	start := (current - 1) * p.Size
	end := start + p.Size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Current:    current,
		TotalPages: total,
		Total:      len(items),
	}
}

// View derives the visible page from a fetched collection plus the session's
// filter, sort, and page state. It has no side effects beyond its own state
// and never touches the network.
type View[T any] struct {
	fields Fields[T]
	items  []T
	filter FilterState
	sort   SortState
	page   PageState
}

// NewView creates a view with the given page size. A non-positive size is a
// configuration error and panics.
func NewView[T any](fields Fields[T], pageSize int) *View[T] {
	if pageSize <= 0 {
		panic(fmt.Sprintf("catalog: page size must be positive, got %d", pageSize))
	}
	return &View[T]{
		fields: fields,
		filter: FilterState{Fields: map[string]string{}},
		page:   PageState{Size: pageSize, Current: 1},
	}
}

// SetItems replaces the collection wholesale and re-clamps the current page.
func (v *View[T]) SetItems(items []T) {
	v.items = items
	v.reclamp()
}

// Items returns the full, unfiltered collection.
func (v *View[T]) Items() []T { return v.items }

// Filter returns a copy of the active filter state.
func (v *View[T]) Filter() FilterState {
	fields := make(map[string]string, len(v.filter.Fields))
	for k, val := range v.filter.Fields {
		fields[k] = val
	}
	return FilterState{Search: v.filter.Search, Fields: fields}
}

// SetSearch changes the search term and resets to the first page, so a
// narrowed result set never leaves the session on an empty page.
func (v *View[T]) SetSearch(q string) {
	v.filter.Search = q
	v.page.Current = 1
}

// SetField sets one field filter (empty value clears it) and resets to the
// first page.
func (v *View[T]) SetField(name, value string) {
	if value == "" {
		delete(v.filter.Fields, name)
	} else {
		v.filter.Fields[name] = value
	}
	v.page.Current = 1
}

// SetSort changes the sort order. The page is kept; the visible window
// changes but its count does not.
func (v *View[T]) SetSort(s SortState) { v.sort = s }

// SetPage moves to the requested page, clamped into range.
func (v *View[T]) SetPage(n int) {
	total := TotalPages(len(v.filtered()), v.page.Size)
	v.page.Current = ClampPage(n, total)
}

// CurrentPage returns the clamped current page number.
func (v *View[T]) CurrentPage() int { return v.page.Current }

// Reset restores default filters, sort, and page. Used when the view is
// pointed at a different collection identity.
func (v *View[T]) Reset() {
	v.filter = FilterState{Fields: map[string]string{}}
	v.sort = SortState{}
	v.page.Current = 1
}

// Filtered returns the collection after filters, before pagination.
func (v *View[T]) Filtered() []T {
	return ApplySort(v.filtered(), v.fields, v.sort)
}

// Page computes the visible page. Deterministic for a given state.
func (v *View[T]) Page() Page[T] {
	p := Paginate(v.Filtered(), v.page)
	v.page.Current = p.Current
	return p
}

// Remove splices the item with the given key out of the collection and
// re-clamps the page. Reports whether the item was present.
func (v *View[T]) Remove(key string) bool {
	for i, item := range v.items {
		if v.fields.Key(item) == key {
			v.items = append(v.items[:i:i], v.items[i+1:]...)
			v.reclamp()
			return true
		}
	}
	return false
}

// Patch replaces the entry with the same key. Reports whether a match was
// found; an unknown key is never inserted.
func (v *View[T]) Patch(item T) bool {
	key := v.fields.Key(item)
	for i := range v.items {
		if v.fields.Key(v.items[i]) == key {
			items := make([]T, len(v.items))
			copy(items, v.items)
			items[i] = item
			v.items = items
			return true
		}
	}
	return false
}

func (v *View[T]) filtered() []T {
	return ApplyFilters(v.items, v.fields, v.filter)
}

func (v *View[T]) reclamp() {
	total := TotalPages(len(v.filtered()), v.page.Size)
	v.page.Current = ClampPage(v.page.Current, total)
}
