package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "organized_api.json"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "organized_api.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestStore_NotLoaded(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"), nil, nil)

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)

	require.Error(t, s.Reload(context.Background()))
	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, s.Err(), ErrLoad)
}

func TestStore_FailedReloadKeepsSnapshot(t *testing.T) {
	path := copyFixture(t)
	s := NewStore(path, nil, nil)

	require.NoError(t, s.Reload(context.Background()))
	first, err := s.Current()
	require.NoError(t, err)
	assert.False(t, s.LoadedAt().IsZero())

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	require.Error(t, s.Reload(context.Background()))

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, first, cur)
	assert.ErrorIs(t, s.Err(), ErrInvalidDocument)
}

func TestStore_Watch(t *testing.T) {
	path := copyFixture(t)
	s := NewStore(path, nil, nil)
	require.NoError(t, s.Reload(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	doc := `{"categories":{"only":{"name":"Only","description":"","endpoints":[
		{"method":"GET","path":"/only","function_name":"only","parameters":[]}
	]}},"total_endpoints":1}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	require.Eventually(t, func() bool {
		c, err := s.Current()
		return err == nil && c.TotalEndpoints == 1
	}, 3*time.Second, 25*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestStore_WatchRemoteIsNoop(t *testing.T) {
	s := NewStore("https://example.com/organized_api.json", nil, nil)
	assert.NoError(t, s.Watch(context.Background()))
}
