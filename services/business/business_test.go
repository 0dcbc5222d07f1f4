package business

import (
	"context"
	"fmt"
	"testing"
	"time"

	businessRepo "trylocal/database/repository/business"
	"trylocal/models"
	"trylocal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	businesses map[string]*models.Business
	nextID     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{businesses: map[string]*models.Business{}}
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	biz, ok := r.businesses[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *biz
	return &copied, nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*models.Business, error) {
	for _, b := range r.businesses {
		if b.OwnerEmail == email {
			copied := *b
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Business, error) {
	for _, b := range r.businesses {
		if b.Security.TokenHash == tokenHash {
			copied := *b
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeRepo) Create(ctx context.Context, biz *models.Business) error {
	if biz.ID == "" {
		r.nextID++
		biz.ID = fmt.Sprintf("biz-%d", r.nextID)
	}
	copied := *biz
	r.businesses[biz.ID] = &copied
	return nil
}

func (r *fakeRepo) Search(ctx context.Context, criteria businessRepo.SearchCriteria) ([]models.Business, error) {
	var out []models.Business
	for _, b := range r.businesses {
		if criteria.Category != "" && b.Category != criteria.Category {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) UpdateSet(ctx context.Context, id string, updateDoc bson.M) error {
	biz, ok := r.businesses[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for key, value := range updateDoc {
		switch key {
		case "name":
			biz.Name = value.(string)
		case "category":
			biz.Category = value.(string)
		case "description":
			biz.Description = value.(string)
		case "address":
			biz.Address = value.(string)
		case "phone":
			biz.Phone = value.(string)
		case "photoUrl":
			biz.PhotoURL = value.(string)
		case "hours":
			biz.Hours = value.(models.BusinessHours)
		case "security.tokenHash":
			biz.Security.TokenHash = value.(string)
		}
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.businesses[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.businesses, id)
	return nil
}

func sampleRegistration() models.BusinessRegistration {
	return models.BusinessRegistration{
		Name:       "Gresham Coffee Roasters",
		OwnerEmail: "owner@example.com",
		Password:   "correct-horse",
		Category:   "cafe",
		Hours: models.BusinessHours{
			"monday": {Open: "09:00", Close: "17:00"},
		},
	}
}

func TestRegister_CreatesBusinessWithSession(t *testing.T) {
	repo := newFakeRepo()
	svc := &DefaultBusinessService{Repo: repo}

	biz, err := svc.Register(context.Background(), sampleRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, biz.ID)
	assert.NotEmpty(t, biz.Security.Token)
	assert.Empty(t, biz.Security.PasswordHash, "password hash must not leave the service")

	stored, err := repo.GetByID(context.Background(), biz.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Security.PasswordHash), []byte("correct-horse")))
	assert.Equal(t, utils.HashToken(biz.Security.Token), stored.Security.TokenHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := &DefaultBusinessService{Repo: repo}

	_, err := svc.Register(context.Background(), sampleRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), sampleRegistration())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_RejectsInvalidHours(t *testing.T) {
	svc := &DefaultBusinessService{Repo: newFakeRepo()}

	reg := sampleRegistration()
	reg.Hours = models.BusinessHours{"monday": {Open: "17:00", Close: "09:00"}}

	_, err := svc.Register(context.Background(), reg)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := &DefaultBusinessService{Repo: repo}

	registered, err := svc.Register(context.Background(), sampleRegistration())
	require.NoError(t, err)

	biz, err := svc.Authenticate(context.Background(), "owner@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, biz.ID)
	assert.NotEmpty(t, biz.Security.Token)

	sub, err := utils.ExtractIDFromToken(biz.Security.Token)
	require.NoError(t, err)
	assert.Equal(t, biz.ID, sub)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := &DefaultBusinessService{Repo: repo}

	_, err := svc.Register(context.Background(), sampleRegistration())
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "owner@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	svc := &DefaultBusinessService{Repo: newFakeRepo()}

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetByID_StripsSecurity(t *testing.T) {
	repo := newFakeRepo()
	svc := &DefaultBusinessService{Repo: repo}

	registered, err := svc.Register(context.Background(), sampleRegistration())
	require.NoError(t, err)

	biz, err := svc.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BusinessSecurity{}, biz.Security)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := &DefaultBusinessService{Repo: newFakeRepo()}

	_, err := svc.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile_OnlyProvidedFields(t *testing.T) {
	repo := newFakeRepo()
	svc := &DefaultBusinessService{Repo: repo}

	registered, err := svc.Register(context.Background(), sampleRegistration())
	require.NoError(t, err)

	newName := "Gresham Coffee & Tea"
	err = svc.UpdateProfile(context.Background(), registered.ID, ProfileUpdate{Name: &newName})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, stored.Name)
	assert.Equal(t, "cafe", stored.Category, "untouched fields must survive a profile patch")
}

func TestUpdateHours_Validates(t *testing.T) {
	repo := newFakeRepo()
	svc := &DefaultBusinessService{Repo: repo}

	registered, err := svc.Register(context.Background(), sampleRegistration())
	require.NoError(t, err)

	err = svc.UpdateHours(context.Background(), registered.ID, models.BusinessHours{
		"monday": {Open: "bad", Close: "17:00"},
	})
	assert.ErrorIs(t, err, ErrInvalidHours)

	err = svc.UpdateHours(context.Background(), registered.ID, models.BusinessHours{
		"tuesday": {Open: "10:00", Close: "16:00"},
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	_, ok := stored.Hours.ForWeekday(time.Tuesday)
	assert.True(t, ok)
}
