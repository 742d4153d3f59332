package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidKey(t *testing.T) {
	for _, k := range []string{"sandbox.scene", "a", "life_v2", "x-1"} {
		assert.True(t, ValidKey(k), k)
	}
	for _, k := range []string{"", ".hidden", "../escape", "a/b", "sp ace"} {
		assert.False(t, ValidKey(k), k)
	}
}

func testStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	_, err := st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Put(ctx, "k", []byte("one")))
	got, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	require.NoError(t, st.Put(ctx, "k", []byte("two")))
	got, err = st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	require.NoError(t, st.Delete(ctx, "k"))
	_, err = st.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, st.Delete(ctx, "k"), "deleting twice is fine")

	assert.Error(t, st.Put(ctx, "../x", nil))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, st.Put(ctx, "k", buf))
	buf[0] = 'X'
	got, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "blobs")
	testStore(t, NewFileStore(dir))
}

func TestFileStoreWritesFile(t *testing.T) {
	dir := t.TempDir()
	st := NewFileStore(dir)
	require.NoError(t, st.Put(context.Background(), "sandbox.scene", []byte("{}")))
	data, err := os.ReadFile(filepath.Join(dir, "sandbox.scene"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestFileStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileStore(t.TempDir()).Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	st, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)

	st, err = Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, st)
}
