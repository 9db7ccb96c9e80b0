package credentials_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-client/credentials"
)

func TestNewEncryptedFileStoreValidation(t *testing.T) {
	_, err := credentials.NewEncryptedFileStore("", "passphrase")
	require.Error(t, err)

	_, err = credentials.NewEncryptedFileStore("creds.enc", "")
	require.Error(t, err)
}

func TestEncryptedFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := credentials.NewEncryptedFileStore(path, "correct horse battery staple")
	require.NoError(t, err)

	want := credentials.Credentials{AccessToken: "access-secret", RefreshToken: "refresh-secret"}
	require.NoError(t, store.Set(want))

	got, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, want, *got)
}

func TestEncryptedFileStoreCiphertextAtRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := credentials.NewEncryptedFileStore(path, "correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, store.Set(credentials.Credentials{AccessToken: "access-secret", RefreshToken: "refresh-secret"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "access-secret")
	require.NotContains(t, string(raw), "refresh-secret")
}

func TestEncryptedFileStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := credentials.NewEncryptedFileStore(path, "correct passphrase")
	require.NoError(t, err)
	require.NoError(t, store.Set(credentials.Credentials{AccessToken: "access-secret"}))

	other, err := credentials.NewEncryptedFileStore(path, "wrong passphrase")
	require.NoError(t, err)

	_, err = other.Get()
	require.Error(t, err)
}

func TestEncryptedFileStoreGetMissingFile(t *testing.T) {
	store, err := credentials.NewEncryptedFileStore(filepath.Join(t.TempDir(), "missing.enc"), "passphrase")
	require.NoError(t, err)

	_, err = store.Get()
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
}

func TestEncryptedFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := credentials.NewEncryptedFileStore(path, "passphrase")
	require.NoError(t, err)

	require.NoError(t, store.Set(credentials.Credentials{AccessToken: "access-secret"}))
	require.NoError(t, store.Clear())

	_, err = store.Get()
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
}
