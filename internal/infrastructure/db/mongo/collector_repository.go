package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

const collectionCollectors = "collectors"

// CollectorRepository persists field-agent records.
type CollectorRepository struct {
	coll *mongo.Collection
}

func NewCollectorRepository(db *mongo.Database) *CollectorRepository {
	return &CollectorRepository{coll: db.Collection(collectionCollectors)}
}

type collectorDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Phone        string             `bson:"phone"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Cedula       string             `bson:"cedula"`
	Zone         string             `bson:"zone"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func collectorFromDomain(c *domain.Collector) collectorDoc {
	return collectorDoc{
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Cedula:       c.Cedula,
		Zone:         c.Zone,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt.UTC(),
		UpdatedAt:    c.UpdatedAt.UTC(),
	}
}

func (d collectorDoc) toDomain() *domain.Collector {
	return &domain.Collector{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Phone:        d.Phone,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Cedula:       d.Cedula,
		Zone:         d.Zone,
		Status:       domain.RecordStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *CollectorRepository) Create(ctx context.Context, c *domain.Collector) (*domain.Collector, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, collectorFromDomain(c))
	if err != nil {
		return nil, err
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CollectorRepository) FindByID(ctx context.Context, id string) (*domain.Collector, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc collectorDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCollectorNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CollectorRepository) FindByEmail(ctx context.Context, email string) (*domain.Collector, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc collectorDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCollectorNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CollectorRepository) List(ctx context.Context) ([]*domain.Collector, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Collector
	for cursor.Next(ctx) {
		var doc collectorDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *CollectorRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Collector, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	var doc collectorDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCollectorNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CollectorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCollectorNotFound
	}
	return nil
}

func (r *CollectorRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"status": string(domain.StatusActive)})
}

// EnsureIndexes creates the unique email index used by the login lookup.
func (r *CollectorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
