// Package data provides typed per-collection access on top of the document
// cache. Snapshot reads never touch the network; Fetch and Save variants go
// through the cache manager.
package data

import (
	"context"
	"sync"

	"github.com/maktabat-alamal/storefront/internal/cache"
	"github.com/maktabat-alamal/storefront/internal/events"
	"github.com/maktabat-alamal/storefront/internal/models"
)

// Store owns the per-entity snapshots shared by every handler in the
// process. Snapshots refresh opportunistically when the notifier broadcasts
// a new document, so plain reads are eventually consistent by design.
type Store struct {
	cache *cache.Manager
	bus   *events.Bus

	mu            sync.RWMutex
	products      []models.Product
	orders        []models.Order
	categories    []models.Category
	coupons       []models.Coupon
	menus         []models.MenuItem
	users         []models.User
	notifications []models.Notification
	forumPosts    []models.ForumPost
	cart          []models.CartItem

	// wmu serializes read-modify-write cycles within this process. Writers
	// in other processes are still last-writer-wins on the whole document.
	wmu sync.Mutex

	unsub func()
}

func NewStore(c *cache.Manager, bus *events.Bus) *Store {
	s := &Store{cache: c, bus: bus}
	ch, cancel := bus.Subscribe(events.TopicDocument, 8)
	s.unsub = cancel
	go func() {
		for e := range ch {
			if e.Document == nil {
				continue
			}
			s.apply(e.Document)
			bus.Publish(events.Event{Topic: events.TopicProducts})
			bus.Publish(events.Event{Topic: events.TopicOrders})
			bus.Publish(events.Event{Topic: events.TopicCategories})
		}
	}()
	return s
}

// Close detaches the store from the event bus.
func (s *Store) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

// apply replaces every snapshot from a freshly broadcast document.
func (s *Store) apply(doc *models.Document) {
	c := doc.Clone()
	s.mu.Lock()
	s.products = c.Products
	s.orders = c.Orders
	s.categories = c.Categories
	s.coupons = c.Coupons
	s.menus = c.Menus
	s.users = c.Users
	s.notifications = c.Notifications
	s.forumPosts = c.ForumPosts
	s.mu.Unlock()
}

// SyncAll refreshes every snapshot from the authoritative document.
func (s *Store) SyncAll(ctx context.Context) {
	s.apply(s.cache.Get(ctx))
}

// Update runs one atomic read-modify-write cycle: fetch the full document,
// let mutate patch it in place, write the whole thing back and refresh every
// snapshot. Concurrent Updates serialize on wmu, so an append inside mutate
// never loses a sibling's append. A mutate error aborts the cycle before
// anything is written.
func (s *Store) Update(ctx context.Context, mutate func(*models.Document) error) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	doc := s.cache.Get(ctx)
	if err := mutate(doc); err != nil {
		return err
	}
	if err := s.cache.Put(ctx, doc); err != nil {
		return err
	}
	s.apply(doc)
	return nil
}

// save is the single-collection variant used by the SaveX helpers.
func (s *Store) save(ctx context.Context, mutate func(*models.Document)) error {
	return s.Update(ctx, func(d *models.Document) error {
		mutate(d)
		return nil
	})
}

// ---- products ----

// Products returns the snapshot without blocking on network I/O.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.products == nil {
		return []models.Product{}
	}
	return append([]models.Product(nil), s.products...)
}

// FetchProducts returns the authoritative collection and refreshes the
// snapshot.
func (s *Store) FetchProducts(ctx context.Context) []models.Product {
	doc := s.cache.Get(ctx)
	s.mu.Lock()
	s.products = append([]models.Product(nil), doc.Products...)
	s.mu.Unlock()
	return doc.Products
}

// SaveProducts updates the snapshot optimistically, then writes through. On
// error the snapshot stays ahead of durable storage until the next
// successful sync; callers decide whether to retry or surface it.
func (s *Store) SaveProducts(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	s.products = append([]models.Product(nil), products...)
	s.mu.Unlock()
	return s.save(ctx, func(d *models.Document) { d.Products = products })
}

// ---- orders ----

func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.orders == nil {
		return []models.Order{}
	}
	return append([]models.Order(nil), s.orders...)
}

func (s *Store) FetchOrders(ctx context.Context) []models.Order {
	doc := s.cache.Get(ctx)
	s.mu.Lock()
	s.orders = append([]models.Order(nil), doc.Orders...)
	s.mu.Unlock()
	return doc.Orders
}

func (s *Store) SaveOrders(ctx context.Context, orders []models.Order) error {
	s.mu.Lock()
	s.orders = append([]models.Order(nil), orders...)
	s.mu.Unlock()
	return s.save(ctx, func(d *models.Document) { d.Orders = orders })
}

// ---- categories ----

// Categories falls back to the built-in taxonomy before the first sync so
// the storefront renders a sensible nav even when everything else is down.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.categories == nil {
		return models.DefaultCategories()
	}
	return append([]models.Category(nil), s.categories...)
}

func (s *Store) FetchCategories(ctx context.Context) []models.Category {
	doc := s.cache.Get(ctx)
	s.mu.Lock()
	s.categories = append([]models.Category(nil), doc.Categories...)
	s.mu.Unlock()
	return doc.Categories
}

func (s *Store) SaveCategories(ctx context.Context, categories []models.Category) error {
	s.mu.Lock()
	s.categories = append([]models.Category(nil), categories...)
	s.mu.Unlock()
	return s.save(ctx, func(d *models.Document) { d.Categories = categories })
}

// ---- coupons ----

func (s *Store) Coupons() []models.Coupon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.coupons == nil {
		return []models.Coupon{}
	}
	return append([]models.Coupon(nil), s.coupons...)
}

func (s *Store) FetchCoupons(ctx context.Context) []models.Coupon {
	doc := s.cache.Get(ctx)
	s.mu.Lock()
	s.coupons = append([]models.Coupon(nil), doc.Coupons...)
	s.mu.Unlock()
	return doc.Coupons
}

func (s *Store) SaveCoupons(ctx context.Context, coupons []models.Coupon) error {
	s.mu.Lock()
	s.coupons = append([]models.Coupon(nil), coupons...)
	s.mu.Unlock()
	return s.save(ctx, func(d *models.Document) { d.Coupons = coupons })
}

// ---- menus ----

func (s *Store) Menus() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.menus == nil {
		return models.DefaultMenus()
	}
	return append([]models.MenuItem(nil), s.menus...)
}

func (s *Store) FetchMenus(ctx context.Context) []models.MenuItem {
	doc := s.cache.Get(ctx)
	s.mu.Lock()
	s.menus = append([]models.MenuItem(nil), doc.Menus...)
	s.mu.Unlock()
	return doc.Menus
}

func (s *Store) SaveMenus(ctx context.Context, menus []models.MenuItem) error {
	s.mu.Lock()
	s.menus = append([]models.MenuItem(nil), menus...)
	s.mu.Unlock()
	return s.save(ctx, func(d *models.Document) { d.Menus = menus })
}

// ---- users ----

// Users falls back to the built-in admin account so the back office can
// always be entered on a fresh deployment.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.users == nil {
		return models.DefaultDocument().Users
	}
	return append([]models.User(nil), s.users...)
}

func (s *Store) FetchUsers(ctx context.Context) []models.User {
	doc := s.cache.Get(ctx)
	s.mu.Lock()
	s.users = append([]models.User(nil), doc.Users...)
	s.mu.Unlock()
	return doc.Users
}

func (s *Store) SaveUsers(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	s.users = append([]models.User(nil), users...)
	s.mu.Unlock()
	return s.save(ctx, func(d *models.Document) { d.Users = users })
}

// ---- notifications ----

func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.notifications == nil {
		return []models.Notification{}
	}
	return append([]models.Notification(nil), s.notifications...)
}

func (s *Store) FetchNotifications(ctx context.Context) []models.Notification {
	doc := s.cache.Get(ctx)
	s.mu.Lock()
	s.notifications = append([]models.Notification(nil), doc.Notifications...)
	s.mu.Unlock()
	return doc.Notifications
}

func (s *Store) SaveNotifications(ctx context.Context, notifications []models.Notification) error {
	s.mu.Lock()
	s.notifications = append([]models.Notification(nil), notifications...)
	s.mu.Unlock()
	return s.save(ctx, func(d *models.Document) { d.Notifications = notifications })
}

// ---- forum ----

func (s *Store) ForumPosts() []models.ForumPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forumPosts == nil {
		return []models.ForumPost{}
	}
	return append([]models.ForumPost(nil), s.forumPosts...)
}

func (s *Store) FetchForumPosts(ctx context.Context) []models.ForumPost {
	doc := s.cache.Get(ctx)
	s.mu.Lock()
	s.forumPosts = append([]models.ForumPost(nil), doc.ForumPosts...)
	s.mu.Unlock()
	return doc.ForumPosts
}

func (s *Store) SaveForumPosts(ctx context.Context, posts []models.ForumPost) error {
	s.mu.Lock()
	s.forumPosts = append([]models.ForumPost(nil), posts...)
	s.mu.Unlock()
	return s.save(ctx, func(d *models.Document) { d.ForumPosts = posts })
}

// ---- cart (session-local, never part of the shared document) ----

func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartItem(nil), s.cart...)
}

func (s *Store) SaveCart(cart []models.CartItem) {
	s.mu.Lock()
	s.cart = append([]models.CartItem(nil), cart...)
	s.mu.Unlock()
	s.bus.Publish(events.Event{Topic: events.TopicCart})
}
