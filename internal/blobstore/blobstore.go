// Package blobstore abstracts the external object store holding document
// bytes. The core only ever signs URLs and deletes objects; uploads and
// downloads happen directly between the client and the store.
package blobstore

import (
	"context"
	"time"
)

// BlobStore issues time-limited signed URLs for an object path and deletes
// objects. Implementations must be safe for concurrent use.
type BlobStore interface {
	// UploadURL signs a URL granting a single PUT of the given content
	// type to path, valid for ttl.
	UploadURL(ctx context.Context, path, contentType string, ttl time.Duration) (string, error)

	// DownloadURL signs a URL granting GET access to path, valid for ttl.
	DownloadURL(ctx context.Context, path string, ttl time.Duration) (string, error)

	// Delete removes the object at path. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, path string) error
}
