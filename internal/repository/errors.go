// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios without string matching on
// driver errors. Repository-specific sentinels (duplicate username,
// duplicate room number, spent reset code) live next to the repository
// that produces them.
package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
