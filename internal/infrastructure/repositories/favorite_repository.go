package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avatarctic/wishlist-api/internal/core/domain/favorite"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/db"
)

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  string             `bson:"clientId"`
	ProductID string             `bson:"productId"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *favoriteDocument) toDomain() *favorite.FavoriteProduct {
	return &favorite.FavoriteProduct{
		ID:        d.ID.Hex(),
		ClientID:  d.ClientID,
		ProductID: d.ProductID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// FavoriteRepository implements the favorite repository on a MongoDB collection
type FavoriteRepository struct {
	coll   *mongo.Collection
	logger *logrus.Logger
}

func NewFavoriteRepository(database *db.Database, logger *logrus.Logger) ports.FavoriteRepository {
	return NewFavoriteRepositoryWithCollection(database.Collection(db.FavoritesCollection), logger)
}

func NewFavoriteRepositoryWithCollection(coll *mongo.Collection, logger *logrus.Logger) ports.FavoriteRepository {
	return &FavoriteRepository{coll: coll, logger: logger}
}

func (r *FavoriteRepository) Create(ctx context.Context, f *favorite.FavoriteProduct) error {
	doc := favoriteDocument{
		ID:        primitive.NewObjectID(),
		ClientID:  f.ClientID,
		ProductID: f.ProductID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return favorite.ErrDuplicate
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"client_id": f.ClientID, "product_id": f.ProductID}).WithError(err).Error("db: failed to create favorite")
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	f.ID = doc.ID.Hex()
	return nil
}

func (r *FavoriteRepository) List(ctx context.Context, clientID string, filter favorite.Filter) ([]*favorite.FavoriteProduct, error) {
	query := bson.M{"clientId": clientID}
	if filter.ProductID != "" {
		query["productId"] = filter.ProductID
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"client_id": clientID}).WithError(err).Error("db: failed to list favorites")
		}
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer cur.Close(ctx)

	favorites := []*favorite.FavoriteProduct{}
	for cur.Next(ctx) {
		var doc favoriteDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode favorite: %w", err)
		}
		favorites = append(favorites, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return favorites, nil
}

func (r *FavoriteRepository) GetByID(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, favorite.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "clientId": clientID})
}

func (r *FavoriteRepository) GetByProduct(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error) {
	return r.findOne(ctx, bson.M{"clientId": clientID, "productId": productID})
}

func (r *FavoriteRepository) findOne(ctx context.Context, filter bson.M) (*favorite.FavoriteProduct, error) {
	var doc favoriteDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, favorite.ErrNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"filter": filter}).WithError(err).Error("db: failed to get favorite")
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, clientID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return favorite.ErrNotFound
	}
	return r.deleteOne(ctx, bson.M{"_id": oid, "clientId": clientID})
}

func (r *FavoriteRepository) DeleteByProduct(ctx context.Context, clientID, productID string) error {
	return r.deleteOne(ctx, bson.M{"clientId": clientID, "productId": productID})
}

func (r *FavoriteRepository) deleteOne(ctx context.Context, filter bson.M) error {
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"filter": filter}).WithError(err).Error("db: failed to delete favorite")
		}
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return favorite.ErrNotFound
	}
	return nil
}

// DeleteByClient removes every favorite of clientID and reports how many were removed.
func (r *FavoriteRepository) DeleteByClient(ctx context.Context, clientID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"clientId": clientID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete client favorites: %w", err)
	}
	return res.DeletedCount, nil
}
