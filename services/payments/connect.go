package payments

import (
	"context"
	"errors"
	"time"

	businessRepo "trylocal/database/repository/business"
	"trylocal/models"
	"trylocal/services/notification"
	"trylocal/services/tasks"
	"trylocal/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// postOnboardingSyncDelay is how long after handing out an onboarding link
// the worker re-checks the account, so a returning owner sees fresh status.
const postOnboardingSyncDelay = 5 * time.Minute

// ConnectService manages the lifecycle of a business's payment account:
// none -> pending -> verified, with pending <-> restricted while the owner
// resolves platform requirements. Verified is sticky until the next
// explicit sync.
type ConnectService interface {
	CreateAccount(ctx context.Context, businessID, email, businessName string) (string, error)
	SyncAccountStatus(ctx context.Context, accountID, businessID string) (*models.PaymentAccount, error)
	CreateOnboardingLink(ctx context.Context, accountID, businessID string) (string, error)
}

// DefaultConnectService is the production implementation. All collaborators
// are injected; nothing here retries automatically.
type DefaultConnectService struct {
	Client     ConnectClient
	Repo       businessRepo.BusinessRepository
	Email      notification.EmailService
	Queue      *asynq.Client
	ReturnURL  string
	RefreshURL string
	Now        func() time.Time
}

func (s *DefaultConnectService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateAccount provisions a payment account for a business. Idempotent: a
// business that already holds an account gets its existing ID back and no
// second external account is created.
func (s *DefaultConnectService) CreateAccount(ctx context.Context, businessID, email, businessName string) (string, error) {
	logger := utils.GetLogger()
	if businessID == "" || email == "" || businessName == "" {
		return "", &ValidationError{Message: "businessId, email and businessName are required"}
	}

	biz, err := s.Repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", &NotFoundError{Resource: "business", ID: businessID}
		}
		return "", &ExternalServiceError{Category: CategoryTransient, Message: "failed to load business record"}
	}

	if biz.Payment.AccountID != "" {
		logger.Info("payment account already exists, returning existing ID",
			zap.String("businessID", businessID),
			zap.String("accountID", biz.Payment.AccountID))
		return biz.Payment.AccountID, nil
	}

	accountID, err := s.Client.CreateAccount(ctx, email, businessName)
	if err != nil {
		return "", err
	}

	update := bson.M{
		"stripeConnectedAccountId": accountID,
		"stripeAccountStatus":      models.AccountStatusPending,
		"payoutsEnabled":           false,
		"detailsSubmitted":         false,
	}
	if err := s.Repo.UpdateSet(ctx, businessID, update); err != nil {
		logger.Error("failed to persist new payment account",
			zap.String("businessID", businessID), zap.Error(err))
		return "", &ExternalServiceError{Category: CategoryTransient, Message: "failed to persist payment account"}
	}

	if s.Email != nil {
		if err := s.Email.SendOnboardingStarted(ctx, email, businessName); err != nil {
			logger.Warn("onboarding email failed", zap.String("businessID", businessID), zap.Error(err))
		}
	}

	logger.Info("payment account created",
		zap.String("businessID", businessID), zap.String("accountID", accountID))
	return accountID, nil
}

// SyncAccountStatus reads fresh capability flags from the payments
// platform and derives the local status: verified iff charges, payouts and
// details-submitted all hold; else restricted iff the platform reports a
// disable reason; else pending. When businessID is given the derived
// state is persisted with one atomic document update.
func (s *DefaultConnectService) SyncAccountStatus(ctx context.Context, accountID, businessID string) (*models.PaymentAccount, error) {
	logger := utils.GetLogger()
	if accountID == "" {
		return nil, &ValidationError{Message: "accountId is required"}
	}

	state, err := s.Client.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account := &models.PaymentAccount{
		AccountID:        state.ID,
		Status:           deriveStatus(state),
		PayoutsEnabled:   state.PayoutsEnabled,
		DetailsSubmitted: state.DetailsSubmitted,
		DisabledReason:   state.DisabledReason,
		Requirements:     state.Requirements,
	}

	if businessID == "" {
		return account, nil
	}

	biz, err := s.Repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "business", ID: businessID}
		}
		return nil, &ExternalServiceError{Category: CategoryTransient, Message: "failed to load business record"}
	}

	update := bson.M{
		"stripeAccountStatus": account.Status,
		"payoutsEnabled":      account.PayoutsEnabled,
		"detailsSubmitted":    account.DetailsSubmitted,
		"disabledReason":      account.DisabledReason,
	}
	if account.Status == models.AccountStatusVerified {
		if biz.Payment.OnboardingCompletedAt != nil {
			account.OnboardingCompletedAt = biz.Payment.OnboardingCompletedAt
		} else {
			completed := s.now()
			account.OnboardingCompletedAt = &completed
			update["stripeOnboardingCompletedAt"] = completed
		}
	}
	if err := s.Repo.UpdateSet(ctx, businessID, update); err != nil {
		logger.Error("failed to persist payment account status",
			zap.String("businessID", businessID), zap.Error(err))
		return nil, &ExternalServiceError{Category: CategoryTransient, Message: "failed to persist payment account status"}
	}

	s.notifyTransition(ctx, biz, account)

	return account, nil
}

// CreateOnboardingLink requests a short-lived onboarding/continuation URL
// for the account and schedules a deferred status re-sync.
func (s *DefaultConnectService) CreateOnboardingLink(ctx context.Context, accountID, businessID string) (string, error) {
	logger := utils.GetLogger()
	if accountID == "" || businessID == "" {
		return "", &ValidationError{Message: "accountId and businessId are required"}
	}

	url, err := s.Client.CreateAccountLink(ctx, accountID, s.RefreshURL, s.ReturnURL)
	if err != nil {
		return "", err
	}

	if s.Queue != nil {
		task, opts, err := tasks.NewConnectSyncTask(models.SyncPayload{
			AccountID:  accountID,
			BusinessID: businessID,
		}, postOnboardingSyncDelay)
		if err == nil {
			_, err = s.Queue.Enqueue(task, opts...)
		}
		if err != nil {
			logger.Warn("failed to schedule deferred account sync",
				zap.String("accountID", accountID), zap.Error(err))
		}
	}

	return url, nil
}

// deriveStatus applies the status policy to a platform capability snapshot.
func deriveStatus(state *AccountState) string {
	switch {
	case state.ChargesEnabled && state.PayoutsEnabled && state.DetailsSubmitted:
		return models.AccountStatusVerified
	case state.DisabledReason != "":
		return models.AccountStatusRestricted
	default:
		return models.AccountStatusPending
	}
}

// notifyTransition emails the owner when a sync lands the account in a new
// state worth telling them about.
func (s *DefaultConnectService) notifyTransition(ctx context.Context, biz *models.Business, account *models.PaymentAccount) {
	if s.Email == nil || biz.Payment.Status == account.Status {
		return
	}
	logger := utils.GetLogger()

	var err error
	switch account.Status {
	case models.AccountStatusVerified:
		err = s.Email.SendPayoutsVerified(ctx, biz.OwnerEmail, biz.Name)
	case models.AccountStatusRestricted:
		err = s.Email.SendAccountRestricted(ctx, biz.OwnerEmail, biz.Name, account.DisabledReason)
	}
	if err != nil {
		logger.Warn("status transition email failed",
			zap.String("businessID", biz.ID), zap.Error(err))
	}
}
