package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"trylocal/models"
	"trylocal/services/schedule"

	"github.com/gin-gonic/gin"
)

// SlotsHandler serves pickup availability for a business.
type SlotsHandler struct {
	Svc schedule.ScheduleService
}

// NewSlotsHandler creates a new SlotsHandler instance.
func NewSlotsHandler(svc schedule.ScheduleService) *SlotsHandler {
	return &SlotsHandler{Svc: svc}
}

// GetPickupSlotsHandler returns the offerable pickup slots for a business.
// An empty list means no availability, not an error.
func (h *SlotsHandler) GetPickupSlotsHandler(c *gin.Context) {
	businessID := c.Param("id")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "business id is required"})
		return
	}

	cfg := schedule.DefaultSlotConfig()
	if v := c.Query("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 1 || days > 30 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer between 1 and 30"})
			return
		}
		cfg.HorizonDays = days
	}
	if v := c.Query("granularity"); v != "" {
		mins, err := strconv.Atoi(v)
		if err != nil || mins < 5 || mins > 240 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "granularity must be minutes between 5 and 240"})
			return
		}
		cfg.Granularity = time.Duration(mins) * time.Minute
	}

	slots, err := h.Svc.GetPickupSlots(c.Request.Context(), businessID, cfg)
	if err != nil {
		if errors.Is(err, schedule.ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute pickup slots"})
		return
	}

	if slots == nil {
		slots = []models.PickupSlot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
