package handlers

import (
	"time"

	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment booking requests from users.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	DiseaseCategory string           `json:"diseaseCategory" binding:"required"`
	Symptoms        string           `json:"symptoms"`
	Details         string           `json:"details"`
	PreferredDate   string           `json:"preferredDate" binding:"required"`
	PreferredStart  string           `json:"preferredStart"`
	PreferredEnd    string           `json:"preferredEnd"`
	Documents       []models.FileRef `json:"documents"`
}

// CreateAppointment books a new appointment request. It starts pending with
// no doctor; an admin assigns one later.
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

	preferredDate, err := time.Parse("2006-01-02", req.PreferredDate)
	if err != nil {
		utils.BadRequest(c, "preferredDate must be YYYY-MM-DD")
		return
	}
	for _, clock := range []string{req.PreferredStart, req.PreferredEnd} {
		if clock == "" {
			continue
		}
		if _, err := scheduling.ParseClock(clock); err != nil {
			utils.BadRequest(c, "preferred times must be zero-padded HH:MM values")
			return
		}
	}

	appointment := models.Appointment{
		UserID:          userID,
		DiseaseCategory: req.DiseaseCategory,
		Symptoms:        req.Symptoms,
		Details:         req.Details,
		PreferredDate:   scheduling.DateOnly(preferredDate),
		PreferredStart:  req.PreferredStart,
		PreferredEnd:    req.PreferredEnd,
		Documents:       req.Documents,
		Status:          models.StatusPending,
		CreatedBy:       userID,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in
// user. Users see their own requests, doctors their assigned appointments,
// admins everything.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	var err error

	query := h.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	switch userRole {
	case models.RoleUser:
		err = query.Where("user_id = ?", userID).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Where("doctor_id = ?", userID).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the requesting user, the assigned doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

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

	isOwner := userID == appointment.UserID
	isAssignedDoctor := appointment.DoctorID != nil && userID == *appointment.DoctorID

	if userRole != models.RoleAdmin && !isOwner && !isAssignedDoctor {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// GetDashboard returns the requesting user's upcoming and completed
// appointments with summary counts.
func (h *AppointmentHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var upcoming []models.Appointment
	if err := h.DB.Where("user_id = ? AND status IN ?", userID, models.LiveStatuses).
		Order("scheduled_date asc").Limit(10).Find(&upcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to load dashboard: "+err.Error())
		return
	}

	var history []models.Appointment
	if err := h.DB.Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Order("updated_at desc").Limit(10).Find(&history).Error; err != nil {
		utils.InternalServerError(c, "Failed to load dashboard: "+err.Error())
		return
	}

	pending := 0
	for _, appt := range upcoming {
		if appt.Status == models.StatusPending {
			pending++
		}
	}

	utils.Success(c, "Dashboard loaded", gin.H{
		"upcoming": upcoming,
		"history":  history,
		"stats": gin.H{
			"total":     len(upcoming) + len(history),
			"completed": len(history),
			"pending":   pending,
		},
	})
}

// CancelAppointmentRequest carries an optional cancellation reason.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CancelAppointment lets a user cancel their own appointment.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND user_id = ?", appointmentID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := scheduling.Transition(&appointment, models.StatusCancelled, userID, req.Reason, time.Now()); err != nil {
		utils.Conflict(c, err.Error())
		return
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment cancelled", appointment)
}

// RescheduleAppointmentRequest represents a user's reschedule proposal.
type RescheduleAppointmentRequest struct {
	NewDate  string `json:"newDate" binding:"required"`
	NewStart string `json:"newStart"`
	NewEnd   string `json:"newEnd"`
	Reason   string `json:"reason"`
}

// RescheduleAppointment lets a user propose a new date for their own
// appointment. The previous date lands in the reschedule history and the
// assigned doctor, if any, is kept.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	newDate, err := time.Parse("2006-01-02", req.NewDate)
	if err != nil {
		utils.BadRequest(c, "newDate must be YYYY-MM-DD")
		return
	}
	for _, clock := range []string{req.NewStart, req.NewEnd} {
		if clock == "" {
			continue
		}
		if _, err := scheduling.ParseClock(clock); err != nil {
			utils.BadRequest(c, "times must be zero-padded HH:MM values")
			return
		}
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND user_id = ?", appointmentID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := scheduling.RescheduleByUser(&appointment, newDate, req.NewStart, req.NewEnd, req.Reason, userID, time.Now()); err != nil {
		utils.Conflict(c, err.Error())
		return
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to reschedule appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment rescheduled", appointment)
}
