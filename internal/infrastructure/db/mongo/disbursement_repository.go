package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

const collectionDisbursements = "disbursements"

// DisbursementRepository implements ports.DisbursementRepository using MongoDB.
type DisbursementRepository struct {
	col *mongo.Collection
}

func NewDisbursementRepository(db *mongo.Database) *DisbursementRepository {
	return &DisbursementRepository{col: db.Collection(collectionDisbursements)}
}

func (r *DisbursementRepository) Create(ctx context.Context, d *domain.Disbursement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, d)
	return err
}

func (r *DisbursementRepository) FindByID(ctx context.Context, id string) (*domain.Disbursement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Disbursement
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDisbursementNotFound
		}
		return nil, fmt.Errorf("find disbursement: %w", err)
	}
	return &d, nil
}

func (r *DisbursementRepository) Update(ctx context.Context, d *domain.Disbursement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return fmt.Errorf("update disbursement: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDisbursementNotFound
	}
	return nil
}

func (r *DisbursementRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete disbursement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDisbursementNotFound
	}
	return nil
}

// List returns a page of records matching filter, newest first, plus
// the total count for pagination.
func (r *DisbursementRepository) List(ctx context.Context, filter ports.ListDisbursementsFilter) ([]*domain.Disbursement, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := buildQuery(filter)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count disbursements: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list disbursements: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Disbursement
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode disbursements: %w", err)
	}
	return items, total, nil
}

// Stats aggregates every record matching filter in a single pipeline.
func (r *DisbursementRepository) Stats(ctx context.Context, filter ports.ListDisbursementsFilter, now time.Time) (*ports.DisbursementStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	pipeline := []bson.M{
		{"$match": buildQuery(filter)},
		{"$group": bson.M{
			"_id":          bson.M{"classification": "$classification"},
			"count":        bson.M{"$sum": 1},
			"amount":       bson.M{"$sum": "$amount"},
			"pending":      bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", string(domain.StatusPending)}}, 1, 0}}},
			"approved":     bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", string(domain.StatusApproved)}}, 1, 0}}},
			"rejected":     bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", string(domain.StatusRejected)}}, 1, 0}}},
			"monthCount":   bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gte": bson.A{"$date", monthStart}}, 1, 0}}},
			"monthAmount":  bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gte": bson.A{"$date", monthStart}}, "$amount", 0}}},
		}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	defer cur.Close(ctx)

	type group struct {
		ID struct {
			Classification string `bson:"classification"`
		} `bson:"_id"`
		Count       int64   `bson:"count"`
		Amount      float64 `bson:"amount"`
		Pending     int64   `bson:"pending"`
		Approved    int64   `bson:"approved"`
		Rejected    int64   `bson:"rejected"`
		MonthCount  int64   `bson:"monthCount"`
		MonthAmount float64 `bson:"monthAmount"`
	}

	stats := &ports.DisbursementStats{
		Classification: make(map[domain.Classification]ports.ClassificationBreakdown, len(domain.Classifications)),
	}
	for _, c := range domain.Classifications {
		stats.Classification[c] = ports.ClassificationBreakdown{}
	}

	var groups []group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	for _, g := range groups {
		stats.TotalCount += g.Count
		stats.TotalAmount += g.Amount
		stats.PendingCount += g.Pending
		stats.ApprovedCount += g.Approved
		stats.RejectedCount += g.Rejected
		stats.MonthlyCount += g.MonthCount
		stats.MonthlyAmount += g.MonthAmount
		stats.Classification[domain.Classification(g.ID.Classification)] = ports.ClassificationBreakdown{
			Count:  g.Count,
			Amount: g.Amount,
		}
	}
	return stats, nil
}

// EnsureIndexes creates the indexes used by list filters and search.
func (r *DisbursementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "classification", Value: 1}}},
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func buildQuery(filter ports.ListDisbursementsFilter) bson.M {
	query := bson.M{}
	if filter.Classification != "" {
		query["classification"] = filter.Classification
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.FundSource != "" {
		query["fund_source"] = filter.FundSource
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CreatedBy != "" {
		query["created_by"] = filter.CreatedBy
	}
	if filter.Archived != nil {
		query["archived"] = *filter.Archived
	}
	if filter.Search != "" {
		// The search term is a literal, not a user-supplied pattern;
		// unescaped metacharacters would make Mongo reject the regex.
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"payee": pattern},
			bson.M{"description": pattern},
			bson.M{"reference_number": pattern},
		}
	}

	dateRange := bson.M{}
	if !filter.DateFrom.IsZero() {
		dateRange["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		dateRange["$lte"] = filter.DateTo
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	return query
}
