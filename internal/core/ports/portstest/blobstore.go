package portstest

import (
	"context"
	"fmt"
	"sync"

	"dispatch/internal/pkg/errs"
)

// BlobStore keeps blobs in a map.
type BlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	seq   int
}

func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: map[string][]byte{}}
}

func (b *BlobStore) Put(_ context.Context, namespace, filename string, content []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	ref := fmt.Sprintf("%s/%d-%s", namespace, b.seq, filename)
	b.blobs[ref] = append([]byte(nil), content...)
	return ref, nil
}

func (b *BlobStore) Get(_ context.Context, ref string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	content, ok := b.blobs[ref]
	if !ok {
		return nil, errs.NewObjectNotFoundError("blob", ref)
	}
	return content, nil
}

func (b *BlobStore) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.blobs)
}
