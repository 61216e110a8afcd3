package ports

import (
	"context"
	"io"
)

// ImageStore persists uploaded images and returns a reference the API serves
// back to clients. The production deployment points this at an external
// object store; the bundled implementation writes to local disk.
type ImageStore interface {
	// Save stores the image content under a name derived from filename and
	// returns its public reference.
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	// Remove deletes a previously stored image by its reference. Removing an
	// unknown reference is not an error.
	Remove(ctx context.Context, ref string) error
}
