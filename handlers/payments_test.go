package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trylocal/models"
	"trylocal/services/payments"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnectService struct {
	createResult string
	createErr    error
	syncResult   *models.PaymentAccount
	syncErr      error
	linkResult   string
	linkErr      error
}

func (f *fakeConnectService) CreateAccount(ctx context.Context, businessID, email, businessName string) (string, error) {
	return f.createResult, f.createErr
}

func (f *fakeConnectService) SyncAccountStatus(ctx context.Context, accountID, businessID string) (*models.PaymentAccount, error) {
	return f.syncResult, f.syncErr
}

func (f *fakeConnectService) CreateOnboardingLink(ctx context.Context, accountID, businessID string) (string, error) {
	return f.linkResult, f.linkErr
}

// paymentsRouter wires the handlers behind a stand-in for the owner auth
// middleware, which stores the authenticated business id on the context.
func paymentsRouter(svc payments.ConnectService, ownerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("businessID", ownerID) })
	h := NewPaymentsHandler(svc)
	r.POST("/connect/account", h.CreateAccountHandler)
	r.POST("/connect/account/sync", h.SyncAccountStatusHandler)
	r.POST("/connect/onboarding-link", h.CreateOnboardingLinkHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAccountHandler_Success(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{createResult: "acct_123"}, "biz-1")

	w := postJSON(t, r, "/connect/account", gin.H{
		"businessId":   "biz-1",
		"email":        "owner@example.com",
		"businessName": "Gresham Coffee Roasters",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "acct_123", resp["accountId"])
}

func TestCreateAccountHandler_MissingFields(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{}, "biz-1")

	w := postJSON(t, r, "/connect/account", gin.H{"businessId": "biz-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAccountHandler_BusinessNotFound(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{
		createErr: &payments.NotFoundError{Resource: "business", ID: "ghost"},
	}, "ghost")

	w := postJSON(t, r, "/connect/account", gin.H{
		"businessId":   "ghost",
		"email":        "owner@example.com",
		"businessName": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAccountHandler_ExternalFailureIsSanitized(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{
		createErr: &payments.ExternalServiceError{
			Category: payments.CategoryAuthentication,
			Message:  "payments platform authentication failed",
		},
	}, "biz-1")

	w := postJSON(t, r, "/connect/account", gin.H{
		"businessId":   "biz-1",
		"email":        "owner@example.com",
		"businessName": "Gresham Coffee Roasters",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "payments platform authentication failed", resp["error"])
	assert.NotContains(t, w.Body.String(), "sk_")
}

func TestCreateAccountHandler_RejectsOtherOwnersBusiness(t *testing.T) {
	svc := &fakeConnectService{createResult: "acct_123"}
	r := paymentsRouter(svc, "biz-1")

	w := postJSON(t, r, "/connect/account", gin.H{
		"businessId":   "biz-2",
		"email":        "attacker@example.com",
		"businessName": "Someone Else's Shop",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSyncAccountStatusHandler_Success(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{
		syncResult: &models.PaymentAccount{
			AccountID:        "acct_123",
			Status:           models.AccountStatusVerified,
			PayoutsEnabled:   true,
			DetailsSubmitted: true,
		},
	}, "biz-1")

	w := postJSON(t, r, "/connect/account/sync", gin.H{
		"accountId":  "acct_123",
		"businessId": "biz-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		AccountStatus    string `json:"accountStatus"`
		PayoutsEnabled   bool   `json:"payoutsEnabled"`
		DetailsSubmitted bool   `json:"detailsSubmitted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.AccountStatusVerified, resp.AccountStatus)
	assert.True(t, resp.PayoutsEnabled)
	assert.True(t, resp.DetailsSubmitted)
}

func TestSyncAccountStatusHandler_RequiresAccountID(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{}, "biz-1")

	w := postJSON(t, r, "/connect/account/sync", gin.H{"businessId": "biz-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncAccountStatusHandler_UnknownAccount(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{
		syncErr: &payments.NotFoundError{Resource: "payment account", ID: "acct_missing"},
	}, "biz-1")

	w := postJSON(t, r, "/connect/account/sync", gin.H{"accountId": "acct_missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSyncAccountStatusHandler_RejectsOtherOwnersBusiness(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{
		syncResult: &models.PaymentAccount{AccountID: "acct_123", Status: models.AccountStatusVerified},
	}, "biz-1")

	w := postJSON(t, r, "/connect/account/sync", gin.H{
		"accountId":  "acct_123",
		"businessId": "biz-2",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateOnboardingLinkHandler_Success(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{linkResult: "https://connect.stripe.com/setup/s/abc"}, "biz-1")

	w := postJSON(t, r, "/connect/onboarding-link", gin.H{
		"accountId":  "acct_123",
		"businessId": "biz-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://connect.stripe.com/setup/s/abc", resp["url"])
}

func TestCreateOnboardingLinkHandler_RejectsOtherOwnersBusiness(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{linkResult: "https://connect.stripe.com/setup/s/abc"}, "biz-1")

	w := postJSON(t, r, "/connect/onboarding-link", gin.H{
		"accountId":  "acct_123",
		"businessId": "biz-2",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateOnboardingLinkHandler_ValidationError(t *testing.T) {
	r := paymentsRouter(&fakeConnectService{
		linkErr: &payments.ValidationError{Message: "payments platform rejected the request"},
	}, "biz-1")

	w := postJSON(t, r, "/connect/onboarding-link", gin.H{
		"accountId":  "acct_123",
		"businessId": "biz-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
