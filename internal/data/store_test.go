package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktabat-alamal/storefront/internal/cache"
	"github.com/maktabat-alamal/storefront/internal/events"
	"github.com/maktabat-alamal/storefront/internal/fallback"
	"github.com/maktabat-alamal/storefront/internal/models"
)

// stubRemote guards its document with a mutex because the cache manager may
// read and write it from different goroutines.
type stubRemote struct {
	mu  sync.Mutex
	doc *models.Document
	err error
}

func (s *stubRemote) Fetch(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.doc.Clone(), nil
}

func (s *stubRemote) Replace(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.doc = doc.Clone()
	return nil
}

func (s *stubRemote) Create(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	return nil
}

func (s *stubRemote) document() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func storeDoc() *models.Document {
	return &models.Document{
		Products:   []models.Product{{ID: 1, Name: "قلم حبر", Price: 25, InStock: true, Stock: 10}},
		Categories: []models.Category{{ID: 1, Name: "أدوات مكتبية"}},
		Orders:     []models.Order{},
	}
}

func newTestStore(t *testing.T, r *stubRemote) (*Store, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	mgr := cache.NewManager(r, fallback.NewMemoryStore(), bus, time.Minute)
	s := NewStore(mgr, bus)
	t.Cleanup(s.Close)
	return s, bus
}

func TestSnapshotsBeforeFirstSync(t *testing.T) {
	s, _ := newTestStore(t, &stubRemote{doc: storeDoc()})

	assert.Empty(t, s.Products())
	assert.Empty(t, s.Orders())
	assert.NotEmpty(t, s.Categories(), "category nav falls back to the built-in taxonomy")
	assert.NotEmpty(t, s.Users(), "the built-in admin account is always available")
	assert.NotEmpty(t, s.Menus(), "menu nav falls back to the defaults")
}

func TestSyncAllPopulatesSnapshots(t *testing.T) {
	s, _ := newTestStore(t, &stubRemote{doc: storeDoc()})

	s.SyncAll(context.Background())

	require.Len(t, s.Products(), 1)
	assert.Equal(t, "قلم حبر", s.Products()[0].Name)
	require.Len(t, s.Categories(), 1)
	assert.Equal(t, "أدوات مكتبية", s.Categories()[0].Name)
}

func TestSaveProductsWritesThrough(t *testing.T) {
	r := &stubRemote{doc: storeDoc()}
	s, _ := newTestStore(t, r)
	ctx := context.Background()

	products := s.FetchProducts(ctx)
	require.Len(t, products, 1)
	products[0].InStock = false
	products[0].Stock = 0

	require.NoError(t, s.SaveProducts(ctx, products))

	// durable: the remote document carries the change
	assert.False(t, r.doc.Products[0].InStock)
	// local: the snapshot reflects it immediately
	assert.False(t, s.Products()[0].InStock)
}

func TestSaveErrorKeepsOptimisticSnapshot(t *testing.T) {
	r := &stubRemote{doc: storeDoc()}
	s, _ := newTestStore(t, r)
	ctx := context.Background()

	s.SyncAll(ctx)
	r.err = errors.New("remote refused")

	products := s.Products()
	products[0].Name = "اسم جديد"
	err := s.SaveProducts(ctx, products)
	require.Error(t, err)

	// snapshot is ahead of durable storage until the next good sync
	assert.Equal(t, "اسم جديد", s.Products()[0].Name)
	assert.Equal(t, "قلم حبر", r.doc.Products[0].Name)
}

func TestUpdateKeepsConcurrentAppends(t *testing.T) {
	r := &stubRemote{doc: storeDoc()}
	s, _ := newTestStore(t, r)
	ctx := context.Background()
	s.SyncAll(ctx)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.Update(ctx, func(d *models.Document) error {
				d.Orders = append(d.Orders, models.Order{ID: fmt.Sprintf("#%d", n), Status: models.OrderStatusNew})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.document().Orders, writers, "every append must land in the durable document")
	assert.Len(t, s.FetchOrders(ctx), writers, "the cached document must carry every append")
}

func TestUpdateMutateErrorWritesNothing(t *testing.T) {
	r := &stubRemote{doc: storeDoc()}
	s, _ := newTestStore(t, r)
	ctx := context.Background()
	s.SyncAll(ctx)

	sentinel := errors.New("no such record")
	err := s.Update(ctx, func(d *models.Document) error {
		d.Orders = append(d.Orders, models.Order{ID: "#lost"})
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	assert.Empty(t, r.document().Orders)
	assert.Empty(t, s.Orders())
}

func TestUpdatePutErrorLeavesSnapshotsAlone(t *testing.T) {
	r := &stubRemote{doc: storeDoc()}
	s, _ := newTestStore(t, r)
	ctx := context.Background()
	s.SyncAll(ctx)

	r.mu.Lock()
	r.err = errors.New("remote refused")
	r.mu.Unlock()

	err := s.Update(ctx, func(d *models.Document) error {
		d.Orders = append(d.Orders, models.Order{ID: "#lost"})
		return nil
	})
	require.Error(t, err)
	assert.Empty(t, s.Orders())
}

func TestDocumentBroadcastRefreshesSnapshots(t *testing.T) {
	s, bus := newTestStore(t, &stubRemote{doc: storeDoc()})

	doc := storeDoc()
	doc.Products = append(doc.Products, models.Product{ID: 2, Name: "ممحاة", Price: 3})
	bus.Publish(events.Event{Topic: events.TopicDocument, Document: doc})

	require.Eventually(t, func() bool {
		return len(s.Products()) == 2
	}, time.Second, 5*time.Millisecond, "broadcast document should replace the snapshots")
}

func TestDocumentBroadcastFansOutEntityTopics(t *testing.T) {
	s, bus := newTestStore(t, &stubRemote{doc: storeDoc()})

	ch, cancel := bus.Subscribe(events.TopicProducts, 1)
	defer cancel()

	bus.Publish(events.Event{Topic: events.TopicDocument, Document: storeDoc()})

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a products.updated fan-out event")
	}
	require.Eventually(t, func() bool {
		return len(s.Products()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCartStaysOutOfSharedDocument(t *testing.T) {
	r := &stubRemote{doc: storeDoc()}
	s, bus := newTestStore(t, r)

	ch, cancel := bus.Subscribe(events.TopicCart, 1)
	defer cancel()

	s.SaveCart([]models.CartItem{{ID: 1, Name: "قلم حبر", Price: 25, Quantity: 2}})

	require.Len(t, s.Cart(), 1)
	assert.Empty(t, r.doc.Orders, "saving the cart must not write the shared document")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a cart.updated event")
	}
}

func TestSnapshotReturnsCopies(t *testing.T) {
	s, _ := newTestStore(t, &stubRemote{doc: storeDoc()})
	s.SyncAll(context.Background())

	got := s.Products()
	got[0].Name = "mutated"
	assert.Equal(t, "قلم حبر", s.Products()[0].Name)
}
