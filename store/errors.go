package store

import "errors"

// ErrNotFound covers both "no such row" and "row exists but belongs to a
// different owner". The two cases are deliberately indistinguishable to
// callers so that record existence never leaks across users.
var ErrNotFound = errors.New("record not found")
