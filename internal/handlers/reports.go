package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/logger"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/middleware"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/utils"
)

// ReportHandler handles misconduct report requests.
type ReportHandler struct {
	DB         *gorm.DB
	Moderation *service.ModerationService
	Clock      service.Clock
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(db *gorm.DB, moderation *service.ModerationService, clock service.Clock) *ReportHandler {
	return &ReportHandler{DB: db, Moderation: moderation, Clock: clock}
}

// SubmitReportRequest represents the request body for filing a report.
type SubmitReportRequest struct {
	ReportedID    string `json:"reportedId" binding:"required,uuid"`
	ReportType    string `json:"reportType" binding:"required,oneof=no_show misconduct abusive_speech spam other"`
	Title         string `json:"title" binding:"required,max=255"`
	Description   string `json:"description" binding:"required"`
	AppointmentID string `json:"appointmentId" binding:"omitempty,uuid"`
}

// SubmitReport files a misconduct report against another user.
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var req SubmitReportRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	reporterID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	if reporterID == req.ReportedID {
		utils.BadRequest(c, "You cannot report yourself")
		return
	}

	// Verify the reported user exists
	var reported models.User
	if err := h.DB.First(&reported, "id = ?", req.ReportedID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Reported user not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var appointmentID *string
	if req.AppointmentID != "" {
		// A report tied to an appointment must reference one the reporter was part of.
		var appointment models.Appointment
		if err := h.DB.First(&appointment, "id = ?", req.AppointmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Appointment not found")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
		if appointment.PatientID != reporterID && appointment.DoctorID != reporterID {
			utils.Forbidden(c, "You can only report appointments you were part of")
			return
		}
		appointmentID = &req.AppointmentID
	}

	report, err := h.Moderation.Submit(c.Request.Context(), reporterID, req.ReportedID,
		models.ReportType(req.ReportType), req.Title, req.Description, appointmentID)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	logger.WithFields(logrus.Fields{
		"reportId":   report.ID,
		"reporterId": reporterID,
		"reportedId": req.ReportedID,
		"reportType": req.ReportType,
	}).Info("Report submitted")

	utils.Created(c, "Report submitted successfully", report)
}

// GetMyReports handles fetching reports filed by the logged-in user.
func (h *ReportHandler) GetMyReports(c *gin.Context) {
	reporterID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var reports []models.Report
	if err := h.DB.Where("reporter_id = ?", reporterID).Order("created_at desc").Find(&reports).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reports: "+err.Error())
		return
	}

	utils.Success(c, "Reports fetched successfully", reports)
}

// GetReports handles fetching reports for admin review, optionally
// filtered by status (?status=pending).
func (h *ReportHandler) GetReports(c *gin.Context) {
	query := h.DB.Preload("Reporter").Preload("Reported").Order("created_at asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reports: "+err.Error())
		return
	}

	utils.Success(c, "Reports fetched successfully", reports)
}

// BeginReview moves a report into the reviewing state (admin).
func (h *ReportHandler) BeginReview(c *gin.Context) {
	report, err := h.Moderation.BeginReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Success(c, "Report review started", report)
}

// ResolveReportRequest represents the request body for resolving a report.
type ResolveReportRequest struct {
	Resolution string `json:"resolution" binding:"required,oneof=dismissed warning_issued penalty_applied account_suspended account_banned"`
	AdminNote  string `json:"adminNote"`
}

// ResolveReport closes a report with a decision and applies the implied
// sanction to the reported user (admin).
func (h *ReportHandler) ResolveReport(c *gin.Context) {
	var req ResolveReportRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	adminID, _ := middleware.GetUserIDFromContext(c)
	now := h.Clock.Now()

	report, err := h.Moderation.Resolve(c.Request.Context(), c.Param("id"),
		models.ReportResolution(req.Resolution), req.AdminNote, now)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	logger.WithFields(logrus.Fields{
		"reportId":   report.ID,
		"resolution": req.Resolution,
		"adminId":    adminID,
		"reportedId": report.ReportedID,
	}).Info("Report resolved")

	utils.Success(c, "Report resolved successfully", report)
}
