package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := setupStore(t)
	payload := []byte(`[{"_id":"p1","name":"Sourdough"}]`)

	require.NoError(t, s.SaveSnapshot("products", payload))

	got, at, err := s.LoadSnapshot("products")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}

func TestSaveSnapshot_OverwritesPrevious(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.SaveSnapshot("products", []byte(`["old"]`)))
	require.NoError(t, s.SaveSnapshot("products", []byte(`["new"]`)))

	got, _, err := s.LoadSnapshot("products")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["new"]`), got)
}

func TestLoadSnapshot_MissingResource(t *testing.T) {
	s := setupStore(t)

	_, _, err := s.LoadSnapshot("orders")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestInvalidateSnapshot(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.SaveSnapshot("events", []byte(`[]`)))

	require.NoError(t, s.InvalidateSnapshot("events"))

	_, _, err := s.LoadSnapshot("events")
	assert.ErrorIs(t, err, ErrNoSnapshot)

	// Invalidating an absent resource is not an error.
	assert.NoError(t, s.InvalidateSnapshot("events"))
}

func TestSnapshotsAreIndependentPerResource(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.SaveSnapshot("products", []byte(`["p"]`)))
	require.NoError(t, s.SaveSnapshot("orders", []byte(`["o"]`)))

	require.NoError(t, s.InvalidateSnapshot("products"))

	got, _, err := s.LoadSnapshot("orders")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["o"]`), got)
}
