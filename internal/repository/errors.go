package repository

import "errors"

// ErrNotFound is returned by every store when the referenced row does not
// exist. Services and handlers test it with errors.Is.
var ErrNotFound = errors.New("record not found")
