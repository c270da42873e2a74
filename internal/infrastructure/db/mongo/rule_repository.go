package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

const collectionRules = "classification_rules"

// RuleRepository implements ports.RuleRepository using MongoDB.
type RuleRepository struct {
	col *mongo.Collection
}

func NewRuleRepository(db *mongo.Database) *RuleRepository {
	return &RuleRepository{col: db.Collection(collectionRules)}
}

func (r *RuleRepository) Create(ctx context.Context, rule *domain.ClassificationRule) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, rule)
	return err
}

func (r *RuleRepository) FindByID(ctx context.Context, id string) (*domain.ClassificationRule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rule domain.ClassificationRule
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rule); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRuleNotFound
		}
		return nil, fmt.Errorf("find rule: %w", err)
	}
	return &rule, nil
}

func (r *RuleRepository) Update(ctx context.Context, rule *domain.ClassificationRule) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rule.ID}, rule)
	if err != nil {
		return fmt.Errorf("update rule: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

func (r *RuleRepository) List(ctx context.Context) ([]*domain.ClassificationRule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer cur.Close(ctx)

	var rules []*domain.ClassificationRule
	if err := cur.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return rules, nil
}
