package port

import "context"

// ObjectStorage abstracts the object store holding source documents for
// batch processing.
type ObjectStorage interface {
	// List returns the object keys under a prefix, in lexical order.
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	// Download fetches one object's bytes.
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
