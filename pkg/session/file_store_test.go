package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupFileStore creates a temporary directory and file store for testing
func setupFileStore(t *testing.T) (*FileStore, string) {
	tempDir := filepath.Join(os.TempDir(), "authkit-test-"+uuid.New().String())

	store, err := NewFileStore(tempDir)
	require.NoError(t, err)

	t.Cleanup(func() {
		os.RemoveAll(tempDir)
	})

	return store, tempDir
}

func TestFileStore_New(t *testing.T) {
	tempDir := filepath.Join(os.TempDir(), "authkit-test-new-"+uuid.New().String())
	defer os.RemoveAll(tempDir)

	// Should create directory if it doesn't exist
	store, err := NewFileStore(tempDir)
	assert.NoError(t, err)
	assert.NotNil(t, store)
	assert.DirExists(t, tempDir)
}

func TestFileStore_SetGetRemove(t *testing.T) {
	store, _ := setupFileStore(t)

	require.NoError(t, store.Set("session.accessToken", "tok-1"))

	value, err := store.Get("session.accessToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", value)

	require.NoError(t, store.Remove("session.accessToken"))
	_, err = store.Get("session.accessToken")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	t.Run("RemoveAbsentKeyIsNoOp", func(t *testing.T) {
		assert.NoError(t, store.Remove("session.accessToken"))
	})
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	store, tempDir := setupFileStore(t)

	require.NoError(t, store.Set("session.user", `{"id":"42"}`))
	require.NoError(t, store.Set("oauth.state", "abc"))

	reopened, err := NewFileStore(tempDir)
	require.NoError(t, err)

	value, err := reopened.Get("session.user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"42"}`, value)

	value, err = reopened.Get("oauth.state")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)
}

func TestFileStore_CorruptFileIsDiscarded(t *testing.T) {
	tempDir := filepath.Join(os.TempDir(), "authkit-test-corrupt-"+uuid.New().String())
	require.NoError(t, os.MkdirAll(tempDir, 0755))
	defer os.RemoveAll(tempDir)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "authkit.json"), []byte("{not json"), 0600))

	// Corruption must never fail the host; the store starts empty.
	store, err := NewFileStore(tempDir)
	require.NoError(t, err)

	_, err = store.Get("session.user")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// The store is usable and persists again after discarding.
	require.NoError(t, store.Set("session.user", "x"))
	reopened, err := NewFileStore(tempDir)
	require.NoError(t, err)
	value, err := reopened.Get("session.user")
	require.NoError(t, err)
	assert.Equal(t, "x", value)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get("missing")
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	require.NoError(t, store.Set("key", "value"))
	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	require.NoError(t, store.Remove("key"))
	_, err = store.Get("key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
