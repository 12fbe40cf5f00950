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

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB           *gorm.DB
	Booking      *service.BookingService
	Appointments *service.AppointmentService
	Clock        service.Clock
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, booking *service.BookingService, appointments *service.AppointmentService, clock service.Clock) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Booking: booking, Appointments: appointments, Clock: clock}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	DoctorID    string    `json:"doctorId" binding:"required,uuid"`
	PatientID   string    `json:"patientId" binding:"omitempty,uuid"` // Admins may book on a patient's behalf
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
}

// CreateAppointment books a new appointment through the booking pipeline:
// account standing, slot availability, fee, then creation.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	patientID := req.PatientID
	if patientID == "" {
		patientID = userID
	}
	// Patients can only book appointments for themselves.
	if userRole == models.RolePatient && patientID != userID {
		utils.Forbidden(c, "Patients can only book appointments for themselves.")
		return
	}

	// Verify doctor exists and is a doctor; the consultation fee comes from here.
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}
	// Verify patient exists
	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", patientID, models.RolePatient).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	now := h.Clock.Now()
	appointment, err := h.Booking.Book(c.Request.Context(), doctor.ID, patient.ID, req.ScheduledAt, doctor.ConsultationFee, now)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	logger.WithFields(logrus.Fields{
		"appointmentId": appointment.ID,
		"doctorId":      doctor.ID,
		"patientId":     patient.ID,
		"scheduledAt":   appointment.ScheduledAt,
		"feeCharged":    appointment.FeeCharged,
	}).Info("Appointment booked")

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user (patient or doctor).
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	var err error

	query := h.DB.Preload("Patient").Preload("Doctor").Order("scheduled_at asc")

	switch userRole {
	case models.RolePatient:
		err = query.Where("patient_id = ?", userID).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Where("doctor_id = ?", userID).Find(&appointments).Error
	case models.RoleAdmin: // Admins can see all appointments
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments this way. Role: "+string(userRole))
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by involved patient, doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	isPatientInvolved := userID == appointment.PatientID
	isDoctorInvolved := userID == appointment.DoctorID

	if userRole != models.RoleAdmin && !isPatientInvolved && !isDoctorInvolved {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// ConfirmAppointment moves a pending appointment to confirmed.
// Only the involved doctor or an admin may confirm.
func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	if !h.authorizeDoctorOrAdmin(c, appointmentID) {
		return
	}

	appointment, err := h.Appointments.Confirm(c.Request.Context(), appointmentID)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	utils.Success(c, "Appointment confirmed successfully", appointment)
}

// CancelAppointmentRequest represents the request body for cancelling an appointment.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CancelAppointment cancels a pending or confirmed appointment, subject to
// the cancellation window. The involved patient, the involved doctor, or
// an admin may cancel.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	// Reason is optional; an empty body is fine.
	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	isInvolved := userID == appointment.PatientID || userID == appointment.DoctorID
	if userRole != models.RoleAdmin && !isInvolved {
		utils.Forbidden(c, "You are not authorized to cancel this appointment")
		return
	}

	now := h.Clock.Now()
	cancelled, err := h.Appointments.Cancel(c.Request.Context(), appointmentID, req.Reason, now)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	logger.WithFields(logrus.Fields{
		"appointmentId": cancelled.ID,
		"cancelledBy":   userID,
		"reason":        req.Reason,
	}).Info("Appointment cancelled")

	utils.Success(c, "Appointment cancelled successfully", cancelled)
}

// CompleteAppointment marks a confirmed appointment as completed once its
// scheduled time has passed. Only the involved doctor or an admin may
// complete.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	if !h.authorizeDoctorOrAdmin(c, appointmentID) {
		return
	}

	appointment, err := h.Appointments.Complete(c.Request.Context(), appointmentID, h.Clock.Now())
	if err != nil {
		respondCoreError(c, err)
		return
	}

	utils.Success(c, "Appointment completed successfully", appointment)
}

// authorizeDoctorOrAdmin loads the appointment and checks that the caller
// is the involved doctor or an admin. Responds and returns false otherwise.
func (h *AppointmentHandler) authorizeDoctorOrAdmin(c *gin.Context, appointmentID string) bool {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin && userID != appointment.DoctorID {
		utils.Forbidden(c, "You are not authorized to update this appointment")
		return false
	}
	return true
}
