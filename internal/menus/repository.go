// Package menus manages the navigation tree. Two backends exist: the shared
// storefront document (default) and a MongoDB collection used by the
// variant of the admin interface that keeps menus in their own database.
// Both sit behind Repository and are chosen at composition time.
package menus

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/maktabat-alamal/storefront/internal/data"
	"github.com/maktabat-alamal/storefront/internal/models"
)

var ErrNotFound = errors.New("menu not found")

// Repository provides menu persistence. List returns items sorted by their
// Order field and seeds the built-in defaults when the backend is empty.
type Repository interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Save(ctx context.Context, item models.MenuItem) (string, error)
	Delete(ctx context.Context, id string) error
}

// DocumentRepository keeps menus inside the shared storefront document.
type DocumentRepository struct {
	store *data.Store
}

func NewDocumentRepository(store *data.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	items := r.store.FetchMenus(ctx)
	if len(items) == 0 {
		err := r.store.Update(ctx, func(d *models.Document) error {
			if len(d.Menus) == 0 {
				d.Menus = models.DefaultMenus()
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		items = r.store.Menus()
	}
	sortMenus(items)
	return items, nil
}

// Save updates the item matching its id, or appends it with a fresh id when
// the id is empty. The whole cycle runs under the store's write lock so two
// concurrent saves cannot drop each other's item.
func (r *DocumentRepository) Save(ctx context.Context, item models.MenuItem) (string, error) {
	isNew := item.ID == ""
	if isNew {
		item.ID = uuid.NewString()
	}
	err := r.store.Update(ctx, func(d *models.Document) error {
		if isNew {
			d.Menus = append(d.Menus, item)
			return nil
		}
		for i := range d.Menus {
			if d.Menus[i].ID == item.ID {
				d.Menus[i] = item
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return "", err
	}
	return item.ID, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(d *models.Document) error {
		out := d.Menus[:0]
		for _, it := range d.Menus {
			if it.ID != id {
				out = append(out, it)
			}
		}
		if len(out) == len(d.Menus) {
			return ErrNotFound
		}
		d.Menus = out
		return nil
	})
}

func sortMenus(items []models.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
}
