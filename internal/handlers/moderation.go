package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/logger"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/middleware"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/utils"
)

// ModerationHandler handles warnings, penalties and account standing.
type ModerationHandler struct {
	DB        *gorm.DB
	Status    *service.AccountStatusPolicy
	Warnings  service.WarningStore
	Penalties service.PenaltyStore
	Clock     service.Clock
}

// NewModerationHandler creates a new ModerationHandler.
func NewModerationHandler(db *gorm.DB, status *service.AccountStatusPolicy, warnings service.WarningStore, penalties service.PenaltyStore, clock service.Clock) *ModerationHandler {
	return &ModerationHandler{DB: db, Status: status, Warnings: warnings, Penalties: penalties, Clock: clock}
}

// IssueWarningRequest represents the request body for issuing a warning directly.
type IssueWarningRequest struct {
	UserID      string `json:"userId" binding:"required,uuid"`
	WarningType string `json:"warningType" binding:"required,oneof=conduct no_show late_cancellations other"`
	Severity    string `json:"severity" binding:"required,oneof=low medium high"`
	Message     string `json:"message" binding:"required"`
	ExpiresIn   int    `json:"expiresInDays" binding:"omitempty,min=1"` // 0 means never expires
}

// IssueWarning creates a warning for a user without going through a report (admin).
func (h *ModerationHandler) IssueWarning(c *gin.Context) {
	var req IssueWarningRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	warning := models.Warning{
		UserID:      req.UserID,
		WarningType: models.WarningType(req.WarningType),
		Severity:    models.WarningSeverity(req.Severity),
		Message:     req.Message,
	}
	if req.ExpiresIn > 0 {
		expires := h.Clock.Now().Add(time.Duration(req.ExpiresIn) * 24 * time.Hour)
		warning.ExpiresAt = &expires
	}

	if err := h.Warnings.Create(c.Request.Context(), &warning); err != nil {
		utils.InternalServerError(c, "Failed to create warning: "+err.Error())
		return
	}

	logger.WithFields(logrus.Fields{
		"warningId": warning.ID,
		"userId":    req.UserID,
		"severity":  req.Severity,
	}).Info("Warning issued")

	utils.Created(c, "Warning issued successfully", warning)
}

// RevokeWarning deletes a warning (admin). This is the only path that
// removes a warning record.
func (h *ModerationHandler) RevokeWarning(c *gin.Context) {
	if err := h.Warnings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Success(c, "Warning revoked successfully", nil)
}

// IssuePenaltyRequest represents the request body for applying a penalty directly.
type IssuePenaltyRequest struct {
	UserID      string  `json:"userId" binding:"required,uuid"`
	PenaltyType string  `json:"penaltyType" binding:"required,oneof=fee_multiplier temporary_suspension"`
	Reason      string  `json:"reason" binding:"required"`
	Multiplier  float64 `json:"multiplier" binding:"omitempty,gte=1"`
	DurationIn  int     `json:"durationDays" binding:"omitempty,min=1"` // 0 means indefinite
}

// IssuePenalty applies a penalty to a user without going through a report (admin).
func (h *ModerationHandler) IssuePenalty(c *gin.Context) {
	var req IssuePenaltyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	now := h.Clock.Now()
	multiplier := req.Multiplier
	if multiplier < 1.0 {
		multiplier = 1.0
	}

	penalty := models.Penalty{
		UserID:        req.UserID,
		PenaltyType:   models.PenaltyType(req.PenaltyType),
		Reason:        req.Reason,
		Multiplier:    multiplier,
		EffectiveFrom: now,
	}
	if req.DurationIn > 0 {
		until := now.Add(time.Duration(req.DurationIn) * 24 * time.Hour)
		penalty.EffectiveUntil = &until
	}

	if err := h.Penalties.Create(c.Request.Context(), &penalty); err != nil {
		utils.InternalServerError(c, "Failed to create penalty: "+err.Error())
		return
	}

	logger.WithFields(logrus.Fields{
		"penaltyId":   penalty.ID,
		"userId":      req.UserID,
		"penaltyType": req.PenaltyType,
		"multiplier":  multiplier,
	}).Info("Penalty applied")

	utils.Created(c, "Penalty applied successfully", penalty)
}

// RevokePenalty ends a penalty immediately (admin). The record is kept.
func (h *ModerationHandler) RevokePenalty(c *gin.Context) {
	if err := h.Penalties.Revoke(c.Request.Context(), c.Param("id"), h.Clock.Now()); err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Success(c, "Penalty revoked successfully", nil)
}

// UserStanding is the admin view of a user's derived status and the
// records behind it.
type UserStanding struct {
	UserID    string                `json:"userId"`
	Status    service.AccountStatus `json:"status"`
	CanBook   bool                  `json:"canBook"`
	Warnings  []models.Warning      `json:"activeWarnings"`
	Penalties []models.Penalty      `json:"activePenalties"`
}

// GetUserStanding returns the derived account status for a user (admin).
// The status is computed from active records on every call; nothing is
// read from a stored column.
func (h *ModerationHandler) GetUserStanding(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	now := h.Clock.Now()
	warnings, err := h.Warnings.ListActive(c.Request.Context(), userID, now)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch warnings: "+err.Error())
		return
	}
	penalties, err := h.Penalties.ListActive(c.Request.Context(), userID, now)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch penalties: "+err.Error())
		return
	}

	status := service.DeriveStatus(warnings, penalties, now)
	utils.Success(c, "User standing fetched successfully", UserStanding{
		UserID:    userID,
		Status:    status,
		CanBook:   status != service.AccountSuspended && status != service.AccountBanned,
		Warnings:  warnings,
		Penalties: penalties,
	})
}

// GetMyWarnings handles fetching the logged-in user's warnings.
func (h *ModerationHandler) GetMyWarnings(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var warnings []models.Warning
	if err := h.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&warnings).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch warnings: "+err.Error())
		return
	}

	utils.Success(c, "Warnings fetched successfully", warnings)
}

// MarkWarningAsRead marks one of the logged-in user's warnings as read.
func (h *ModerationHandler) MarkWarningAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	warning, err := h.Warnings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if warning.UserID != userID {
		utils.Forbidden(c, "You can only mark your own warnings as read")
		return
	}

	warning.IsRead = true
	if err := h.Warnings.Save(c.Request.Context(), warning); err != nil {
		utils.InternalServerError(c, "Failed to update warning: "+err.Error())
		return
	}

	utils.Success(c, "Warning marked as read", warning)
}
