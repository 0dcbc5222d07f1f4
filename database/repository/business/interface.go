// File: database/repository/business/interface.go
package businessRepo

import (
	"context"

	"trylocal/database"
	"trylocal/models"
	"trylocal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SearchCriteria defines criteria for a directory search.
type SearchCriteria struct {
	Category     string
	Query        string
	VerifiedOnly bool
	Limit        int64
}

// BusinessRepository defines methods for business data access.
type BusinessRepository interface {
	// GetByID retrieves a business by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Business, error)
	// GetByEmail retrieves a business by its owner email.
	GetByEmail(ctx context.Context, email string) (*models.Business, error)
	// GetByTokenHash retrieves a business whose token hash matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Business, error)
	// Create inserts a new business record.
	Create(ctx context.Context, biz *models.Business) error
	// Search returns businesses matching the directory criteria.
	Search(ctx context.Context, criteria SearchCriteria) ([]models.Business, error)
	// UpdateSet patches a business document with a single atomic $set.
	UpdateSet(ctx context.Context, id string, updateDoc bson.M) error
	// Delete removes a business record by its ID.
	Delete(ctx context.Context, id string) error
}

type mongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo constructs a new MongoDB BusinessRepository.
func NewMongoBusinessRepo() BusinessRepository {
	repo := &mongoBusinessRepo{
		coll: database.Collection("businesses"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure business indexes", zap.Error(err))
	}
	return repo
}
