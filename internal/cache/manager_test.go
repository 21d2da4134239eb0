package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktabat-alamal/storefront/internal/events"
	"github.com/maktabat-alamal/storefront/internal/fallback"
	"github.com/maktabat-alamal/storefront/internal/models"
)

type fakeRemote struct {
	doc      *models.Document
	err      error
	fetches  int
	replaces int
	creates  int
	lastPut  *models.Document
}

func (f *fakeRemote) Fetch(ctx context.Context) (*models.Document, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc.Clone(), nil
}

func (f *fakeRemote) Replace(ctx context.Context, doc *models.Document) error {
	f.replaces++
	if f.err != nil {
		return f.err
	}
	f.doc = doc.Clone()
	f.lastPut = f.doc
	return nil
}

func (f *fakeRemote) Create(ctx context.Context, doc *models.Document) error {
	f.creates++
	if f.err != nil {
		return f.err
	}
	f.doc = doc.Clone()
	return nil
}

func remoteDoc() *models.Document {
	return &models.Document{
		Products: []models.Product{{ID: 1, Name: "دفتر", Price: 20, InStock: true}},
	}
}

func newTestManager(r *fakeRemote) (*Manager, *fallback.MemoryStore, func(time.Duration)) {
	fb := fallback.NewMemoryStore()
	m := NewManager(r, fb, events.NewBus(), 30*time.Second)
	clock := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	advance := func(d time.Duration) { clock = clock.Add(d) }
	return m, fb, advance
}

func TestGetServesCachedCopyWithinTTL(t *testing.T) {
	r := &fakeRemote{doc: remoteDoc()}
	m, _, advance := newTestManager(r)
	ctx := context.Background()

	first := m.Get(ctx)
	require.Len(t, first.Products, 1)
	assert.Equal(t, 1, r.fetches)

	advance(29 * time.Second)
	m.Get(ctx)
	assert.Equal(t, 1, r.fetches, "read within the TTL must not hit the remote store")

	advance(2 * time.Second)
	m.Get(ctx)
	assert.Equal(t, 2, r.fetches, "an expired copy must be refetched")
}

func TestGetReturnsIndependentClones(t *testing.T) {
	r := &fakeRemote{doc: remoteDoc()}
	m, _, _ := newTestManager(r)
	ctx := context.Background()

	a := m.Get(ctx)
	a.Products[0].Name = "changed"
	b := m.Get(ctx)
	assert.Equal(t, "دفتر", b.Products[0].Name)
}

func TestGetFallsBackWhenRemoteDown(t *testing.T) {
	r := &fakeRemote{doc: remoteDoc()}
	m, _, advance := newTestManager(r)
	ctx := context.Background()

	// a healthy read populates the fallback copy
	m.Get(ctx)

	r.err = errors.New("gateway timeout")
	advance(time.Minute)
	doc := m.Get(ctx)
	require.NotNil(t, doc)
	assert.Equal(t, "دفتر", doc.Products[0].Name, "outage reads come from the fallback copy")
}

func TestGetServesDefaultsWhenEverythingDown(t *testing.T) {
	r := &fakeRemote{err: errors.New("down")}
	m, _, _ := newTestManager(r)

	doc := m.Get(context.Background())
	require.NotNil(t, doc)
	defaults := models.DefaultDocument()
	assert.Equal(t, defaults.Products, doc.Products, "a total outage serves exactly the built-in catalog")
	assert.Equal(t, defaults.Categories, doc.Categories)
	assert.Equal(t, defaults.Menus, doc.Menus)
	require.Len(t, doc.Users, len(defaults.Users), "the built-in admin keeps the back office reachable")
}

func TestPutWritesThroughAndPublishes(t *testing.T) {
	r := &fakeRemote{doc: remoteDoc()}
	fb := fallback.NewMemoryStore()
	bus := events.NewBus()
	m := NewManager(r, fb, bus, 30*time.Second)
	clock := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	ch, cancel := bus.Subscribe(events.TopicDocument, 1)
	defer cancel()

	doc := remoteDoc()
	doc.Products[0].InStock = false
	require.NoError(t, m.Put(context.Background(), doc))

	assert.Equal(t, 1, r.replaces)
	require.NotNil(t, r.lastPut)
	assert.Equal(t, clock, r.lastPut.LastUpdated, "writes stamp lastUpdated")

	// the write refreshed the cache: no fetch needed
	got := m.Get(context.Background())
	assert.False(t, got.Products[0].InStock)
	assert.Equal(t, 0, r.fetches)

	// fallback holds the new copy too
	fbDoc, err := fb.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fbDoc)
	assert.False(t, fbDoc.Products[0].InStock)

	select {
	case e := <-ch:
		require.NotNil(t, e.Document)
		assert.False(t, e.Document.Products[0].InStock)
	default:
		t.Fatal("expected a document.updated event")
	}
}

func TestPutFailureLeavesCacheUntouched(t *testing.T) {
	r := &fakeRemote{doc: remoteDoc()}
	m, fb, _ := newTestManager(r)
	ctx := context.Background()

	m.Get(ctx) // warm cache + fallback

	r.err = errors.New("write refused")
	doc := remoteDoc()
	doc.Products[0].Name = "should not stick"
	require.Error(t, m.Put(ctx, doc))

	got := m.Get(ctx)
	assert.Equal(t, "دفتر", got.Products[0].Name)

	fbDoc, err := fb.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "دفتر", fbDoc.Products[0].Name)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	r := &fakeRemote{doc: remoteDoc()}
	m, _, _ := newTestManager(r)
	ctx := context.Background()

	m.Get(ctx)
	require.Equal(t, 1, r.fetches)

	m.Invalidate()
	m.Get(ctx)
	assert.Equal(t, 2, r.fetches)
}

func TestSeedCreatesDefaultDocument(t *testing.T) {
	r := &fakeRemote{}
	m, _, _ := newTestManager(r)

	require.NoError(t, m.Seed(context.Background()))
	assert.Equal(t, 1, r.creates)
	require.NotNil(t, r.doc)
	assert.NotEmpty(t, r.doc.Products)
}
