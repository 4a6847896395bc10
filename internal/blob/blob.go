// Package blob persists uploaded image bytes and returns a stable public
// reference. Uploads always create a new name; nothing is ever overwritten
// in place.
package blob

import (
	"context"
	"io"
)

// Store is the blob persistence contract.  Save writes the given bytes
// under name and returns the reference callers should store on the
// painting record: a local path like "/paintings/upload-1712.png" or a
// full object URL for hosted storage.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
