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

	"github.com/avatarctic/wishlist-api/internal/core/domain/client"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/db"
)

type clientDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Email             string             `bson:"email"`
	EmailConfirmation bool               `bson:"emailConfirmation"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func (d *clientDocument) toDomain() *client.Client {
	return &client.Client{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Email:             d.Email,
		EmailConfirmation: d.EmailConfirmation,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ClientRepository implements the client repository on a MongoDB collection
type ClientRepository struct {
	coll   *mongo.Collection
	logger *logrus.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(database *db.Database, logger *logrus.Logger) ports.ClientRepository {
	return NewClientRepositoryWithCollection(database.Collection(db.ClientsCollection), logger)
}

func NewClientRepositoryWithCollection(coll *mongo.Collection, logger *logrus.Logger) ports.ClientRepository {
	return &ClientRepository{coll: coll, logger: logger}
}

// Create inserts c and assigns its generated id
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	doc := clientDocument{
		ID:                primitive.NewObjectID(),
		Name:              c.Name,
		Email:             c.Email,
		EmailConfirmation: c.EmailConfirmation,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return client.ErrEmailTaken
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": c.Email}).WithError(err).Error("db: failed to create client")
		}
		return fmt.Errorf("failed to create client: %w", err)
	}

	c.ID = doc.ID.Hex()
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"client_id": c.ID, "email": c.Email}).Info("db: client created")
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, client.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*client.Client, error) {
	var doc clientDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, client.ErrNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"filter": filter}).WithError(err).Error("db: failed to get client")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	query := bson.M{}
	if filter.ID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.ID)
		if err != nil {
			return []*client.Client{}, nil
		}
		query["_id"] = oid
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to list clients")
		}
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cur.Close(ctx)

	clients := []*client.Client{}
	for cur.Next(ctx) {
		var doc clientDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode client: %w", err)
		}
		clients = append(clients, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) UpdateName(ctx context.Context, id, name string) (*client.Client, error) {
	return r.update(ctx, id, bson.M{"name": name})
}

func (r *ClientRepository) ConfirmEmail(ctx context.Context, id string) (*client.Client, error) {
	return r.update(ctx, id, bson.M{"emailConfirmation": true})
}

func (r *ClientRepository) update(ctx context.Context, id string, set bson.M) (*client.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, client.ErrNotFound
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc clientDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, client.ErrNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"client_id": id}).WithError(err).Error("db: failed to update client")
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return client.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"client_id": id}).WithError(err).Error("db: failed to delete client")
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return client.ErrNotFound
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"client_id": id}).Info("db: client deleted")
	}
	return nil
}
