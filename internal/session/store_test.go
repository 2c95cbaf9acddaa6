package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := NewFileStore(path)

	t.Run("missing file is an empty session", func(t *testing.T) {
		creds, err := store.Load()
		require.NoError(t, err)
		assert.True(t, creds.Empty())
	})

	t.Run("round trip", func(t *testing.T) {
		want := Credentials{Token: "tok", Role: "USER", UserID: "42"}
		require.NoError(t, store.Save(want))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, want, got)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("clear removes the file", func(t *testing.T) {
		require.NoError(t, store.Clear())
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		// Clearing again must stay a no-op.
		require.NoError(t, store.Clear())
	})

	t.Run("corrupt file means no identity", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
		creds, err := store.Load()
		require.NoError(t, err)
		assert.True(t, creds.Empty())
	})
}
