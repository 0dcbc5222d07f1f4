// File: database/repository/business/crud.go
package businessRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trylocal/models"
)

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *mongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var biz models.Business
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&biz); err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *mongoBusinessRepo) GetByEmail(ctx context.Context, email string) (*models.Business, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var biz models.Business
	if err := r.coll.FindOne(ctx, bson.M{"ownerEmail": email}).Decode(&biz); err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *mongoBusinessRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Business, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var biz models.Business
	if err := r.coll.FindOne(ctx, bson.M{"security.tokenHash": tokenHash}).Decode(&biz); err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *mongoBusinessRepo) Create(ctx context.Context, biz *models.Business) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if biz.ID == "" {
		biz.ID = uuid.New().String()
	}
	now := time.Now()
	biz.CreatedAt = now
	biz.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, biz); err != nil {
		return fmt.Errorf("failed to insert business: %w", err)
	}
	return nil
}

func (r *mongoBusinessRepo) Search(ctx context.Context, criteria SearchCriteria) ([]models.Business, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if criteria.Category != "" {
		filter["category"] = criteria.Category
	}
	if criteria.Query != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": criteria.Query, "$options": "i"}},
			{"description": bson.M{"$regex": criteria.Query, "$options": "i"}},
		}
	}
	if criteria.VerifiedOnly {
		filter["stripeAccountStatus"] = models.AccountStatusVerified
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"security": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.Business
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mongoBusinessRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
