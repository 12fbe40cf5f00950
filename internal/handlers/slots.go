package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/utils"
)

// SlotHandler handles doctor slot availability requests.
type SlotHandler struct {
	DB           *gorm.DB
	Availability *service.SlotAvailability
	Clock        service.Clock
}

// NewSlotHandler creates a new SlotHandler.
func NewSlotHandler(db *gorm.DB, availability *service.SlotAvailability, clock service.Clock) *SlotHandler {
	return &SlotHandler{DB: db, Availability: availability, Clock: clock}
}

// GetDoctorSlots returns the free slots on a doctor's day grid.
// The date is passed as ?date=2006-01-02 and interpreted in UTC.
func (h *SlotHandler) GetDoctorSlots(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", doctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		utils.BadRequest(c, "Query parameter 'date' is required (format 2006-01-02)")
		return
	}
	day, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected 2006-01-02")
		return
	}

	slots, err := h.Availability.FreeSlotsForDay(c.Request.Context(), doctorID, day, h.Clock.Now())
	if err != nil {
		utils.InternalServerError(c, "Failed to compute free slots: "+err.Error())
		return
	}

	utils.Success(c, "Free slots fetched successfully", gin.H{
		"doctorId": doctorID,
		"date":     dateStr,
		"slots":    slots,
	})
}
