package menus

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maktabat-alamal/storefront/internal/models"
	"github.com/maktabat-alamal/storefront/pkg/logger"
)

// MongoRepository stores each menu item as its own document in a "menus"
// collection, addressed by an opaque string id.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	// index on "id" for fast lookups (id is expected unique); the repository
	// still works without it, just slower
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(context.Background(), idxModel); err != nil {
		logger.Warnf("menus: could not ensure unique index on id: %v", err)
	}
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	items, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	// empty collection gets the defaults, then re-read for the sorted view
	if err := r.seedDefaults(ctx); err != nil {
		return nil, err
	}
	return r.list(ctx)
}

func (r *MongoRepository) list(ctx context.Context) ([]models.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.MenuItem{}
	for cur.Next(ctx) {
		var it models.MenuItem
		if err := cur.Decode(&it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, cur.Err()
}

func (r *MongoRepository) Save(ctx context.Context, item models.MenuItem) (string, error) {
	if item.ID == "" {
		item.ID = primitive.NewObjectID().Hex()
		if _, err := r.col.InsertOne(ctx, item); err != nil {
			return "", err
		}
		return item.ID, nil
	}
	set := bson.M{
		"name":     item.Name,
		"url":      item.URL,
		"parentId": item.ParentID,
		"order":    item.Order,
		"isActive": item.IsActive,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"id": item.ID}, bson.M{"$set": set})
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", ErrNotFound
	}
	return item.ID, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) seedDefaults(ctx context.Context) error {
	opts := options.Update().SetUpsert(true)
	for _, it := range models.DefaultMenus() {
		set := bson.M{
			"name":     it.Name,
			"url":      it.URL,
			"parentId": it.ParentID,
			"order":    it.Order,
			"isActive": it.IsActive,
		}
		if _, err := r.col.UpdateOne(ctx, bson.M{"id": it.ID}, bson.M{"$set": set}, opts); err != nil {
			return err
		}
	}
	return nil
}
