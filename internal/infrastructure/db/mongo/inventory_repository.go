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

const collectionInventory = "inventory"

// InventoryRepository persists equipment assignments.
type InventoryRepository struct {
	coll *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{coll: db.Collection(collectionInventory)}
}

type itemDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CollectorID  string             `bson:"collector_id"`
	ItemType     string             `bson:"item_type"`
	Description  string             `bson:"description"`
	SerialNumber string             `bson:"serial_number,omitempty"`
	AssignedDate time.Time          `bson:"assigned_date"`
	Status       string             `bson:"status"`
	Notes        string             `bson:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d itemDoc) toDomain() *domain.InventoryItem {
	return &domain.InventoryItem{
		ID:           d.ID.Hex(),
		CollectorID:  d.CollectorID,
		ItemType:     domain.ItemType(d.ItemType),
		Description:  d.Description,
		SerialNumber: d.SerialNumber,
		AssignedDate: d.AssignedDate,
		Status:       domain.ItemStatus(d.Status),
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := itemDoc{
		CollectorID:  item.CollectorID,
		ItemType:     string(item.ItemType),
		Description:  item.Description,
		SerialNumber: item.SerialNumber,
		AssignedDate: item.AssignedDate.UTC(),
		Status:       string(item.Status),
		Notes:        item.Notes,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *item
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc itemDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *InventoryRepository) List(ctx context.Context, collectorID string) ([]*domain.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if collectorID != "" {
		filter["collector_id"] = collectorID
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "assigned_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.InventoryItem
	for cursor.Next(ctx) {
		var doc itemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *InventoryRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.InventoryItem, error) {
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

	var doc itemDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes the inventory queries rely on.
func (r *InventoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "collector_id", Value: 1}},
	})
	return err
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
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
		return domain.ErrItemNotFound
	}
	return nil
}
