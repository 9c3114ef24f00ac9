package catalog

import (
	"math/rand"
	"strings"
)

// RelatedSample picks up to n items from the same category as the given
// item, never including the item itself. The random source is injected so
// callers (and tests) control determinism; ordering of the result is
// whatever the shuffle produced and carries no meaning.
func RelatedSample[T any](items []T, fields Fields[T], selfID, category string, n int, r *rand.Rand) []T {
	if n <= 0 {
		return nil
	}

	want := strings.ToLower(category)
	pool := make([]T, 0, len(items))
	for _, item := range items {
		if fields.Key(item) == selfID {
			continue
		}
		if strings.ToLower(fields.Value(item, "category")) != want {
			continue
		}
		pool = append(pool, item)
	}

	r.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
