package store

import "errors"

// ErrStoreDisabled is returned by the disabled store for operations that
// cannot be served without a backend.
var ErrStoreDisabled = errors.New("preference store disabled: no database configured")
