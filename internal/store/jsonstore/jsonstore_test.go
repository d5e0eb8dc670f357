package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := New(t.TempDir())

	v, ok, err := s.Get("smartlist-products")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStore_SetGetRemove(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.Set("a", `[{"id":"1"}]`))
	require.NoError(t, s.Set("b", "2"))

	v, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	// A second instance sees the same file.
	other := New(dir)
	v, ok, err = other.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, s.Remove("a"))
	_, ok, err = other.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is fine.
	require.NoError(t, s.Remove("nope"))
}

func TestStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)

	require.NoError(t, s.Set("k", "v"))
	_, err := os.Stat(filepath.Join(dir, DataFileName))
	assert.NoError(t, err)
}

func TestStore_CorruptFileIsReset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DataFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	core, logs := observer.New(zapcore.WarnLevel)
	s := New(dir, WithLogger(zap.New(core)))

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("discarding unreadable data file").Len())

	require.NoError(t, s.Set("k", "v"))
	v, ok, err := New(dir).Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "{not json")
}
