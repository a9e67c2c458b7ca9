package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

const collectionPayments = "payments"

// PaymentRepository persists the append-only payment log. There are no
// update or delete operations on purpose.
type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(collectionPayments)}
}

type paymentDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	LoanID      string             `bson:"loan_id"`
	ClientID    string             `bson:"client_id"`
	CollectorID string             `bson:"collector_id"`
	Amount      float64            `bson:"amount"`
	Notes       string             `bson:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d paymentDoc) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:          d.ID.Hex(),
		LoanID:      d.LoanID,
		ClientID:    d.ClientID,
		CollectorID: d.CollectorID,
		Amount:      d.Amount,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := paymentDoc{
		LoanID:      p.LoanID,
		ClientID:    p.ClientID,
		CollectorID: p.CollectorID,
		Amount:      p.Amount,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	inserted := *p
	inserted.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &inserted, nil
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(
		ctx,
		bson.M{"loan_id": loanID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Payment
	for cursor.Next(ctx) {
		var doc paymentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

// EnsureIndexes creates the loan_id index used by the payment history view.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "loan_id", Value: 1}},
	})
	return err
}
