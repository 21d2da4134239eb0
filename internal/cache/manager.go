// Package cache serves the storefront document with bounded staleness and
// keeps it readable through remote outages.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/maktabat-alamal/storefront/internal/events"
	"github.com/maktabat-alamal/storefront/internal/fallback"
	"github.com/maktabat-alamal/storefront/internal/models"
	"github.com/maktabat-alamal/storefront/pkg/logger"
	"github.com/maktabat-alamal/storefront/pkg/metrics"
)

// DefaultTTL bounds how stale an in-memory copy may be served.
const DefaultTTL = 30 * time.Second

// RemoteStore is the slice of the remote client the manager needs.
type RemoteStore interface {
	Fetch(ctx context.Context) (*models.Document, error)
	Replace(ctx context.Context, doc *models.Document) error
	Create(ctx context.Context, doc *models.Document) error
}

// Publisher lets the manager announce successful writes.
type Publisher interface {
	Publish(e events.Event)
}

// Manager is the write-through cache in front of the remote document store.
// All state lives on the struct; the composition root owns the instance.
type Manager struct {
	remote   RemoteStore
	fallback fallback.Store
	bus      Publisher
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	doc    *models.Document
	expiry time.Time
}

func NewManager(remote RemoteStore, fb fallback.Store, bus Publisher, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		remote:   remote,
		fallback: fb,
		bus:      bus,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the document, preferring (in order) an unexpired in-memory
// copy, a fresh remote read, the local fallback copy, and finally the
// built-in defaults. It never fails; degraded reads are logged only.
// The returned document is a clone the caller may mutate freely.
func (m *Manager) Get(ctx context.Context) *models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc != nil && m.now().Before(m.expiry) {
		metrics.CacheReads.WithLabelValues("hit").Inc()
		return m.doc.Clone()
	}

	doc, err := m.remote.Fetch(ctx)
	if err == nil {
		m.doc = doc.Clone()
		m.expiry = m.now().Add(m.ttl)
		m.writeFallback(ctx, m.doc)
		metrics.CacheReads.WithLabelValues("miss").Inc()
		return doc
	}
	metrics.RemoteErrors.WithLabelValues("fetch").Inc()
	logger.Warnf("cache: remote read failed, degrading: %v", err)

	if fb, ferr := m.fallback.Get(ctx); ferr == nil && fb != nil {
		metrics.CacheReads.WithLabelValues("fallback").Inc()
		return fb
	} else if ferr != nil {
		logger.Errorf("cache: fallback read failed: %v", ferr)
	}

	metrics.CacheReads.WithLabelValues("default").Inc()
	return models.DefaultDocument()
}

// Put stamps lastUpdated and replaces the remote document. On success the
// in-memory copy and fallback are refreshed and a document-updated event is
// published. On failure cache and fallback are left untouched and the error
// is returned; the caller's own optimistic state may already be ahead of
// durable storage, which is the accepted failure mode here.
func (m *Manager) Put(ctx context.Context, doc *models.Document) error {
	stamped := doc.Clone()
	stamped.LastUpdated = m.now().UTC()

	if err := m.remote.Replace(ctx, stamped); err != nil {
		metrics.RemoteErrors.WithLabelValues("replace").Inc()
		metrics.DocumentWrites.WithLabelValues("error").Inc()
		return err
	}

	m.mu.Lock()
	m.doc = stamped.Clone()
	m.expiry = m.now().Add(m.ttl)
	m.writeFallback(ctx, m.doc)
	m.mu.Unlock()

	metrics.DocumentWrites.WithLabelValues("ok").Inc()
	if m.bus != nil {
		m.bus.Publish(events.Event{Topic: events.TopicDocument, Document: stamped})
	}
	return nil
}

// Invalidate clears the in-memory copy so the next Get hits the remote store.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.doc = nil
	m.expiry = time.Time{}
	m.mu.Unlock()
}

// Seed creates the remote document from the built-in defaults. Replaying it
// with identical input is idempotent as far as this service is concerned.
func (m *Manager) Seed(ctx context.Context) error {
	return m.remote.Create(ctx, models.DefaultDocument())
}

func (m *Manager) writeFallback(ctx context.Context, doc *models.Document) {
	if err := m.fallback.Put(ctx, doc); err != nil {
		logger.Errorf("cache: fallback write failed: %v", err)
	}
}
