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
	"github.com/gotaagota/collections-api/internal/core/ports"
)

const collectionLoans = "loans"

// casRetries bounds the compare-and-swap loop in ApplyPayment. Contention
// on a single loan is two concurrent writers at most in practice.
const casRetries = 5

// LoanRepository persists loans and owns the atomic ledger update.
type LoanRepository struct {
	coll *mongo.Collection
}

func NewLoanRepository(db *mongo.Database) *LoanRepository {
	return &LoanRepository{coll: db.Collection(collectionLoans)}
}

type loanDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	ClientID          string             `bson:"client_id"`
	CollectorID       string             `bson:"collector_id"`
	Amount            float64            `bson:"amount"`
	InterestRate      float64            `bson:"interest_rate"`
	TotalAmount       float64            `bson:"total_amount"`
	InstallmentAmount float64            `bson:"installment_amount"`
	Installments      int                `bson:"installments"`
	PaidAmount        float64            `bson:"paid_amount"`
	PaidInstallments  int                `bson:"paid_installments"`
	StartDate         time.Time          `bson:"start_date"`
	EndDate           time.Time          `bson:"end_date"`
	Status            string             `bson:"status"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func loanFromDomain(l *domain.Loan) loanDoc {
	return loanDoc{
		ClientID:          l.ClientID,
		CollectorID:       l.CollectorID,
		Amount:            l.Amount,
		InterestRate:      l.InterestRate,
		TotalAmount:       l.TotalAmount,
		InstallmentAmount: l.InstallmentAmount,
		Installments:      l.Installments,
		PaidAmount:        l.PaidAmount,
		PaidInstallments:  l.PaidInstallments,
		StartDate:         l.StartDate.UTC(),
		EndDate:           l.EndDate.UTC(),
		Status:            string(l.Status),
		CreatedAt:         l.CreatedAt.UTC(),
		UpdatedAt:         l.UpdatedAt.UTC(),
	}
}

func (d loanDoc) toDomain() *domain.Loan {
	return &domain.Loan{
		ID:                d.ID.Hex(),
		ClientID:          d.ClientID,
		CollectorID:       d.CollectorID,
		Amount:            d.Amount,
		InterestRate:      d.InterestRate,
		TotalAmount:       d.TotalAmount,
		InstallmentAmount: d.InstallmentAmount,
		Installments:      d.Installments,
		PaidAmount:        d.PaidAmount,
		PaidInstallments:  d.PaidInstallments,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		Status:            domain.LoanStatus(d.Status),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (r *LoanRepository) Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, loanFromDomain(l))
	if err != nil {
		return nil, err
	}

	created := *l
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*domain.Loan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc loanDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *LoanRepository) List(ctx context.Context, filter ports.ListLoansFilter) ([]*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CollectorID != "" {
		query["collector_id"] = filter.CollectorID
	}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Loan
	for cursor.Next(ctx) {
		var doc loanDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

// ApplyPayment folds one payment into the loan's running totals with a
// compare-and-swap keyed on the loan's current paidAmount. A concurrent
// writer invalidates the swap; the loan is reloaded and the new figures
// recomputed, so no payment is ever lost or double-counted.
func (r *LoanRepository) ApplyPayment(ctx context.Context, id string, amount float64) (*domain.Loan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		loan, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		updated := *loan
		if err := updated.RecordPayment(amount); err != nil {
			return nil, err
		}

		opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		res, err := r.coll.UpdateOne(
			opCtx,
			bson.M{"_id": oid, "paid_amount": loan.PaidAmount},
			bson.M{"$set": bson.M{
				"paid_amount":       updated.PaidAmount,
				"paid_installments": updated.PaidInstallments,
				"status":            string(updated.Status),
				"updated_at":        time.Now().UTC(),
			}},
		)
		cancel()
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 1 {
			return &updated, nil
		}
		// Lost the race; reload and retry.
	}

	return nil, domain.ErrLoanConflict
}

func (r *LoanRepository) UpdateStatus(ctx context.Context, id string, status domain.LoanStatus) (*domain.Loan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc loanDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Totals aggregates portfolio sums server-side, optionally scoped to one
// collector.
func (r *LoanRepository) Totals(ctx context.Context, collectorID string) (ports.LoanTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if collectorID != "" {
		match["collector_id"] = collectorID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":             nil,
			"total_portfolio": bson.M{"$sum": "$total_amount"},
			"total_paid":      bson.M{"$sum": "$paid_amount"},
			"active_loans": bson.M{"$sum": bson.M{
				"$cond": bson.A{
					bson.M{"$eq": bson.A{"$status", string(domain.LoanActive)}},
					1,
					0,
				},
			}},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.LoanTotals{}, err
	}
	defer cursor.Close(ctx)

	var row struct {
		TotalPortfolio float64 `bson:"total_portfolio"`
		TotalPaid      float64 `bson:"total_paid"`
		ActiveLoans    int64   `bson:"active_loans"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return ports.LoanTotals{}, err
		}
	}
	if err := cursor.Err(); err != nil {
		return ports.LoanTotals{}, err
	}

	return ports.LoanTotals{
		TotalPortfolio: row.TotalPortfolio,
		TotalPaid:      row.TotalPaid,
		ActiveLoans:    row.ActiveLoans,
	}, nil
}

// EnsureIndexes creates the foreign-key indexes used by list filters.
func (r *LoanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "collector_id", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
