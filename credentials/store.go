package credentials

import (
	internalerrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// ErrNoCredentials is returned by Get when no credential pair is stored.
var ErrNoCredentials = internalerrors.ErrNoCredentials

// Store persists the session credential pair. Implementations must be safe
// for concurrent use: the session client reads before every request and
// writes after a successful refresh.
type Store interface {
	// Get returns the stored credential pair, or ErrNoCredentials when
	// nothing is stored.
	Get() (*Credentials, error)

	// Set replaces the stored credential pair.
	Set(Credentials) error

	// Clear removes the stored credential pair. Clearing an empty store is
	// not an error.
	Clear() error
}
