package handlers

import (
	"errors"
	"net/http"
	"strconv"

	businessRepo "trylocal/database/repository/business"
	"trylocal/models"
	"trylocal/services/business"
	"trylocal/utils"

	"github.com/gin-gonic/gin"
)

// BusinessHandler exposes business onboarding and the public directory.
type BusinessHandler struct {
	Svc business.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler instance.
func NewBusinessHandler(svc business.BusinessService) *BusinessHandler {
	return &BusinessHandler{Svc: svc}
}

// RegisterHandler creates a business listing.
func (h *BusinessHandler) RegisterHandler(c *gin.Context) {
	var reg models.BusinessRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	biz, err := h.Svc.Register(c.Request.Context(), reg)
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	c.JSON(http.StatusCreated, biz)
}

// AuthenticateHandler signs a business owner in.
func (h *BusinessHandler) AuthenticateHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	biz, err := h.Svc.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, business.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
		return
	}
	c.JSON(http.StatusOK, biz)
}

// GetByIDHandler returns one public business listing.
func (h *BusinessHandler) GetByIDHandler(c *gin.Context) {
	biz, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// SearchHandler lists businesses for the public directory.
func (h *BusinessHandler) SearchHandler(c *gin.Context) {
	criteria := businessRepo.SearchCriteria{
		Category:     c.Query("category"),
		Query:        c.Query("q"),
		VerifiedOnly: c.Query("verified") == "true",
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 1 || limit > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 100"})
			return
		}
		criteria.Limit = limit
	}

	results, err := h.Svc.Search(c.Request.Context(), criteria)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search businesses"})
		return
	}
	if results == nil {
		results = []models.Business{}
	}
	c.JSON(http.StatusOK, gin.H{"businesses": results})
}

// UpdateProfileHandler patches the authenticated owner's listing.
func (h *BusinessHandler) UpdateProfileHandler(c *gin.Context) {
	businessID := c.GetString("businessID")
	var update business.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.UpdateProfile(c.Request.Context(), businessID, update); err != nil {
		respondBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// UpdateHoursHandler replaces the owner's declared weekly pickup hours.
func (h *BusinessHandler) UpdateHoursHandler(c *gin.Context) {
	businessID := c.GetString("businessID")
	var input struct {
		Hours models.BusinessHours `json:"hours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.UpdateHours(c.Request.Context(), businessID, input.Hours); err != nil {
		respondBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hours updated"})
}

func respondBusinessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, business.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
	case errors.Is(err, business.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrInvalidHours):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
