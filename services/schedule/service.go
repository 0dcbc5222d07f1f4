package schedule

import (
	"context"
	"errors"
	"time"

	businessRepo "trylocal/database/repository/business"
	"trylocal/models"
	"trylocal/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrBusinessNotFound is returned when the requested business does not exist.
var ErrBusinessNotFound = errors.New("business not found")

// ScheduleService exposes pickup availability for a business.
type ScheduleService interface {
	GetPickupSlots(ctx context.Context, businessID string, cfg SlotConfig) ([]models.PickupSlot, error)
}

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Repo businessRepo.BusinessRepository
	Now  func() time.Time // overridable for tests; defaults to time.Now
}

func (s *DefaultScheduleService) GetPickupSlots(ctx context.Context, businessID string, cfg SlotConfig) ([]models.PickupSlot, error) {
	logger := utils.GetLogger()

	biz, err := s.Repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	slots := GenerateSlots(biz.Hours, now, cfg)
	logger.Debug("computed pickup slots",
		zap.String("businessID", businessID),
		zap.Int("count", len(slots)))
	return slots, nil
}
