package handlers

import (
	"errors"
	"net/http"

	"trylocal/services/payments"
	"trylocal/utils"

	"github.com/gin-gonic/gin"
)

// PaymentsHandler exposes the Stripe Connect account lifecycle.
type PaymentsHandler struct {
	Svc payments.ConnectService
}

// NewPaymentsHandler creates a new PaymentsHandler instance.
func NewPaymentsHandler(svc payments.ConnectService) *PaymentsHandler {
	return &PaymentsHandler{Svc: svc}
}

// ownsBusiness checks the body's businessId against the authenticated
// owner set by the auth middleware. An owner may only touch their own
// payment account.
func ownsBusiness(c *gin.Context, businessID string) bool {
	if businessID != c.GetString("businessID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "businessId does not match the authenticated business"})
		return false
	}
	return true
}

// CreateAccountHandler provisions (or returns) the business's payment account.
func (h *PaymentsHandler) CreateAccountHandler(c *gin.Context) {
	var input struct {
		BusinessID   string `json:"businessId" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		BusinessName string `json:"businessName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !ownsBusiness(c, input.BusinessID) {
		return
	}

	accountID, err := h.Svc.CreateAccount(c.Request.Context(), input.BusinessID, input.Email, input.BusinessName)
	if err != nil {
		respondPaymentsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accountId": accountID})
}

// SyncAccountStatusHandler refreshes the account's status from the
// payments platform, persisting it when a businessId is supplied.
func (h *PaymentsHandler) SyncAccountStatusHandler(c *gin.Context) {
	var input struct {
		AccountID  string `json:"accountId" binding:"required"`
		BusinessID string `json:"businessId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.BusinessID != "" && !ownsBusiness(c, input.BusinessID) {
		return
	}

	account, err := h.Svc.SyncAccountStatus(c.Request.Context(), input.AccountID, input.BusinessID)
	if err != nil {
		respondPaymentsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountStatus":    account.Status,
		"payoutsEnabled":   account.PayoutsEnabled,
		"detailsSubmitted": account.DetailsSubmitted,
		"requirements":     account.Requirements,
	})
}

// CreateOnboardingLinkHandler hands out a short-lived onboarding URL.
func (h *PaymentsHandler) CreateOnboardingLinkHandler(c *gin.Context) {
	var input struct {
		AccountID  string `json:"accountId" binding:"required"`
		BusinessID string `json:"businessId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !ownsBusiness(c, input.BusinessID) {
		return
	}

	url, err := h.Svc.CreateOnboardingLink(c.Request.Context(), input.AccountID, input.BusinessID)
	if err != nil {
		respondPaymentsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// respondPaymentsError maps the payments error taxonomy onto HTTP statuses.
// External messages are already sanitized by the service layer.
func respondPaymentsError(c *gin.Context, err error) {
	var validationErr *payments.ValidationError
	var notFoundErr *payments.NotFoundError
	var externalErr *payments.ExternalServiceError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &externalErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": externalErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
