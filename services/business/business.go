package business

import (
	"context"
	"errors"
	"time"

	businessRepo "trylocal/database/repository/business"
	"trylocal/models"
	"trylocal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 72 * time.Hour

func (s *DefaultBusinessService) Register(ctx context.Context, reg models.BusinessRegistration) (*models.Business, error) {
	logger := utils.GetLogger()

	if err := validateHours(reg.Hours); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByEmail(ctx, reg.OwnerEmail); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	biz := &models.Business{
		Name:        reg.Name,
		OwnerEmail:  reg.OwnerEmail,
		Category:    reg.Category,
		Description: reg.Description,
		Address:     reg.Address,
		Phone:       reg.Phone,
		Hours:       reg.Hours,
		Security:    models.BusinessSecurity{PasswordHash: string(hash)},
	}
	if err := s.Repo.Create(ctx, biz); err != nil {
		return nil, err
	}

	if err := s.issueToken(ctx, biz); err != nil {
		return nil, err
	}

	logger.Info("business registered", zap.String("businessID", biz.ID), zap.String("category", biz.Category))
	biz.Security.PasswordHash = ""
	return biz, nil
}

func (s *DefaultBusinessService) Authenticate(ctx context.Context, email, password string) (*models.Business, error) {
	biz, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(biz.Security.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.issueToken(ctx, biz); err != nil {
		return nil, err
	}
	biz.Security.PasswordHash = ""
	return biz, nil
}

// issueToken mints a session JWT and stores its hash on the business record.
func (s *DefaultBusinessService) issueToken(ctx context.Context, biz *models.Business) error {
	token, err := utils.GenerateToken(biz.ID, biz.OwnerEmail, sessionDuration)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateSet(ctx, biz.ID, bson.M{"security.tokenHash": utils.HashToken(token)}); err != nil {
		return err
	}
	biz.Security.Token = token
	return nil
}

func (s *DefaultBusinessService) GetByID(ctx context.Context, id string) (*models.Business, error) {
	biz, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	biz.Security = models.BusinessSecurity{}
	return biz, nil
}

func (s *DefaultBusinessService) Search(ctx context.Context, criteria businessRepo.SearchCriteria) ([]models.Business, error) {
	return s.Repo.Search(ctx, criteria)
}

func (s *DefaultBusinessService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error {
	doc := bson.M{}
	if update.Name != nil {
		doc["name"] = *update.Name
	}
	if update.Category != nil {
		doc["category"] = *update.Category
	}
	if update.Description != nil {
		doc["description"] = *update.Description
	}
	if update.Address != nil {
		doc["address"] = *update.Address
	}
	if update.Phone != nil {
		doc["phone"] = *update.Phone
	}
	if update.PhotoURL != nil {
		doc["photoUrl"] = *update.PhotoURL
	}
	if len(doc) == 0 {
		return nil
	}
	return s.Repo.UpdateSet(ctx, id, doc)
}

func (s *DefaultBusinessService) UpdateHours(ctx context.Context, id string, hours models.BusinessHours) error {
	if err := validateHours(hours); err != nil {
		return err
	}
	return s.Repo.UpdateSet(ctx, id, bson.M{"hours": hours})
}

// validateHours checks every declared day parses and opens before it closes.
func validateHours(hours models.BusinessHours) error {
	for _, dh := range hours {
		open, err := time.Parse("15:04", dh.Open)
		if err != nil {
			return ErrInvalidHours
		}
		close, err := time.Parse("15:04", dh.Close)
		if err != nil {
			return ErrInvalidHours
		}
		if !open.Before(close) {
			return ErrInvalidHours
		}
	}
	return nil
}
