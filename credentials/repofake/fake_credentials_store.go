package repofake

import (
	"sync"

	"github.com/jrsteele09/go-auth-client/credentials"
)

var _ credentials.Store = (*FakeCredentialsStore)(nil)

// FakeCredentialsStore is an in-memory credential store for tests.
type FakeCredentialsStore struct {
	creds *credentials.Credentials
	lock  sync.RWMutex

	// Error overrides for failure-path tests
	GetErr   error
	SetErr   error
	ClearErr error
}

func NewFakeCredentialsStore() *FakeCredentialsStore {
	return &FakeCredentialsStore{}
}

func (fs *FakeCredentialsStore) Get() (*credentials.Credentials, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.GetErr != nil {
		return nil, fs.GetErr
	}
	if fs.creds == nil {
		return nil, credentials.ErrNoCredentials
	}
	copied := *fs.creds
	return &copied, nil
}

func (fs *FakeCredentialsStore) Set(creds credentials.Credentials) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.SetErr != nil {
		return fs.SetErr
	}
	fs.creds = &creds
	return nil
}

func (fs *FakeCredentialsStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.ClearErr != nil {
		return fs.ClearErr
	}
	fs.creds = nil
	return nil
}
