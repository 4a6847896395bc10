// Package repository defines error values shared by both store
// implementations. These sentinel values let the catalog service and the
// HTTP handlers distinguish failure scenarios without depending on
// store-specific details: a missing painting maps to HTTP 404 while any
// other error is a store failure and maps to HTTP 500.
package repository

import "errors"

// ErrPaintingNotFound is returned when an operation targets a painting id
// that does not exist in the store. Deleting an already-deleted id returns
// this error again rather than reporting success.
var ErrPaintingNotFound = errors.New("painting not found")
