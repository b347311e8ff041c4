package ports

import "context"

// BlobStore keeps uploaded PDFs and photos addressable by a stable reference.
type BlobStore interface {
	Put(ctx context.Context, namespace, filename string, content []byte) (ref string, err error)
	Get(ctx context.Context, ref string) ([]byte, error)
}
