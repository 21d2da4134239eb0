// Package fallback keeps the last-known-good copy of the storefront document
// so reads can survive remote outages.
package fallback

import (
	"context"
	"sync"

	"github.com/maktabat-alamal/storefront/internal/models"
)

// Store persists a single serialized document under one fixed key.
// Get returns (nil, nil) when no copy has been written yet; a copy that can
// no longer be decoded is treated the same way.
type Store interface {
	Get(ctx context.Context) (*models.Document, error)
	Put(ctx context.Context, doc *models.Document) error
}

// MemoryStore is the in-process implementation, used in tests and when no
// Redis is configured.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *models.Document
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Get(ctx context.Context) (*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Clone(), nil
}

func (m *MemoryStore) Put(ctx context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc.Clone()
	return nil
}
