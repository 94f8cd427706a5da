package filekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "not-created-yet"))
	v, ok, err := s.Get(context.Background(), "todos")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := New(dir)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "todos", `[]`))
	b, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))

	v, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestKeysAreEscaped(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "../escape/me", "x"))
	assert.Equal(t, dir, filepath.Dir(s.Path("../escape/me")))

	v, ok, err := s.Get(ctx, "../escape/me")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok, _ = s.Get(ctx, "escape/me")
	assert.False(t, ok)
}

func TestReadErrorIsReturned(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	// a directory where the file should be
	require.NoError(t, os.Mkdir(s.Path("k"), 0o755))

	_, _, err := s.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestWatchFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, WithDebounce(20*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, "todos", func() { fired <- struct{}{} })
	}()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, s.Set(ctx, "other", "ignored"))
	require.NoError(t, s.Set(ctx, "todos", "[]"))

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("watch callback not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}
