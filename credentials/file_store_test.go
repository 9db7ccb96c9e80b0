package credentials_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-client/credentials"
)

func TestNewFileStoreRequiresPath(t *testing.T) {
	_, err := credentials.NewFileStore("")
	require.Error(t, err)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := credentials.NewFileStore(path)
	require.NoError(t, err)

	want := credentials.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, store.Set(want))

	got, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, want, *got)
}

func TestFileStoreGetMissingFile(t *testing.T) {
	store, err := credentials.NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	_, err = store.Get()
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
}

func TestFileStoreSetOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := credentials.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set(credentials.Credentials{AccessToken: "old", RefreshToken: "old-r"}))
	require.NoError(t, store.Set(credentials.Credentials{AccessToken: "new", RefreshToken: "new-r"}))

	got, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, "new", got.AccessToken)
	require.Equal(t, "new-r", got.RefreshToken)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := credentials.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set(credentials.Credentials{AccessToken: "access-1"}))
	require.NoError(t, store.Clear())

	_, err = store.Get()
	require.ErrorIs(t, err, credentials.ErrNoCredentials)

	// Clearing an already-empty store is not an error.
	require.NoError(t, store.Clear())
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := credentials.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set(credentials.Credentials{AccessToken: "access-1"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
