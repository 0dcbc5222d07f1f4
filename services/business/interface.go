package business

import (
	"context"

	businessRepo "trylocal/database/repository/business"
	"trylocal/models"
)

// ProfileUpdate carries the optional listing fields an owner may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}

// BusinessService defines business onboarding and directory operations.
type BusinessService interface {
	// Register creates a business listing and signs the owner in.
	Register(ctx context.Context, reg models.BusinessRegistration) (*models.Business, error)
	// Authenticate verifies owner credentials and issues a session token.
	Authenticate(ctx context.Context, email, password string) (*models.Business, error)
	// GetByID fetches one business. Security fields are stripped.
	GetByID(ctx context.Context, id string) (*models.Business, error)
	// Search lists businesses for the public directory.
	Search(ctx context.Context, criteria businessRepo.SearchCriteria) ([]models.Business, error)
	// UpdateProfile patches listing fields.
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error
	// UpdateHours replaces the declared weekly pickup hours.
	UpdateHours(ctx context.Context, id string, hours models.BusinessHours) error
}

// DefaultBusinessService is the production implementation.
type DefaultBusinessService struct {
	Repo businessRepo.BusinessRepository
}
