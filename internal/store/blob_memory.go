package store

import (
	"context"
	"sync"
)

// MemoryBlob is an in-memory Blob implementation, used in tests and as
// a throwaway backend.
type MemoryBlob struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

// NewMemoryBlob creates an empty in-memory blob.
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

func (b *MemoryBlob) Get(ctx context.Context) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.set {
		return nil, false, nil
	}
	return append([]byte(nil), b.data...), true, nil
}

func (b *MemoryBlob) Put(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	b.set = true
	return nil
}
