package domain

import "errors"

// ErrCorruptRecord marks a persisted session record that cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt session record")

// ErrNotAuthenticated is returned where an identity is required but absent.
var ErrNotAuthenticated = errors.New("not authenticated")
