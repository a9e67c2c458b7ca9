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

const collectionVisits = "visits"

// VisitRepository persists scheduled collection visits.
type VisitRepository struct {
	coll *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) *VisitRepository {
	return &VisitRepository{coll: db.Collection(collectionVisits)}
}

type visitDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ClientID      string             `bson:"client_id"`
	CollectorID   string             `bson:"collector_id"`
	LoanID        string             `bson:"loan_id,omitempty"`
	ScheduledDate time.Time          `bson:"scheduled_date"`
	Status        string             `bson:"status"`
	Notes         string             `bson:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d visitDoc) toDomain() *domain.Visit {
	return &domain.Visit{
		ID:            d.ID.Hex(),
		ClientID:      d.ClientID,
		CollectorID:   d.CollectorID,
		LoanID:        d.LoanID,
		ScheduledDate: d.ScheduledDate,
		Status:        domain.VisitStatus(d.Status),
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *VisitRepository) Create(ctx context.Context, v *domain.Visit) (*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := visitDoc{
		ClientID:      v.ClientID,
		CollectorID:   v.CollectorID,
		LoanID:        v.LoanID,
		ScheduledDate: v.ScheduledDate.UTC(),
		Status:        string(v.Status),
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt.UTC(),
		UpdatedAt:     v.UpdatedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *v
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *VisitRepository) FindByID(ctx context.Context, id string) (*domain.Visit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc visitDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *VisitRepository) List(ctx context.Context, collectorID string) ([]*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if collectorID != "" {
		filter["collector_id"] = collectorID
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Visit
	for cursor.Next(ctx) {
		var doc visitDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *VisitRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Visit, error) {
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

	var doc visitDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *VisitRepository) Delete(ctx context.Context, id string) error {
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
		return domain.ErrVisitNotFound
	}
	return nil
}

// EnsureIndexes creates the collector scoping index.
func (r *VisitRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "collector_id", Value: 1}}},
		{Keys: bson.D{{Key: "scheduled_date", Value: 1}}},
	})
	return err
}
