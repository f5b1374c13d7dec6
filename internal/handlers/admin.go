package handlers

import (
	"fmt"
	"time"

	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler handles appointment administration: browsing the queue,
// assigning doctors to pending requests and adjudicating status changes.
type AdminHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		DB:        db,
		Scheduler: scheduling.NewService(scheduling.NewStore(db)),
	}
}

// GetAppointments lists appointments with optional date, doctor and status
// filters (admin).
func (h *AdminHandler) GetAppointments(c *gin.Context) {
	query := h.DB.Order("created_at desc")

	if d := c.Query("date"); d != "" {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			utils.BadRequest(c, "date filter must be YYYY-MM-DD")
			return
		}
		query = query.Where("preferred_date = ?", scheduling.DateOnly(date))
	}
	if doctor := c.Query("doctor"); doctor != "" {
		query = query.Where("doctor_id = ?", doctor)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// AssignDoctorRequest represents the request body for assigning a doctor to
// a pending or rescheduled appointment.
type AssignDoctorRequest struct {
	DoctorID       string `json:"doctorId" binding:"required"`
	ScheduledDate  string `json:"scheduledDate"`
	ScheduledStart string `json:"scheduledStart"`
	ScheduledEnd   string `json:"scheduledEnd"`
	Notes          string `json:"notes"`
}

// AssignDoctorResponse is the successful assignment payload.
type AssignDoctorResponse struct {
	Appointment         *models.Appointment `json:"appointment"`
	AvailabilityWarning bool                `json:"availabilityWarning"`
}

// AssignDoctor binds a doctor and a concrete schedule to an appointment.
// A schedule outside the doctor's configured hours succeeds with
// availabilityWarning=true; an exact slot collision is rejected.
func (h *AdminHandler) AssignDoctor(c *gin.Context) {
	appointmentID := c.Param("id")

	var req AssignDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	adminID, _ := middleware.GetUserIDFromContext(c)

	appointment, warning, err := h.Scheduler.AssignDoctor(c.Request.Context(), scheduling.AssignmentInput{
		AppointmentID: appointmentID,
		DoctorID:      req.DoctorID,
		Date:          req.ScheduledDate,
		Start:         req.ScheduledStart,
		End:           req.ScheduledEnd,
		AdminID:       adminID,
		Notes:         req.Notes,
	})
	if err != nil {
		respondRejection(c, err)
		return
	}

	utils.Success(c, "Doctor assigned successfully", AssignDoctorResponse{
		Appointment:         appointment,
		AvailabilityWarning: warning,
	})
}

// UpdateAppointmentStatusRequest represents an admin status adjudication.
type UpdateAppointmentStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=confirmed rescheduled completed cancelled declined"`
	Reason         string `json:"reason"`
	ScheduledDate  string `json:"scheduledDate"`
	ScheduledStart string `json:"scheduledStart"`
	ScheduledEnd   string `json:"scheduledEnd"`
}

// UpdateAppointmentStatus applies a status change to any appointment (admin).
func (h *AdminHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID := c.Param("id")

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	adminID, _ := middleware.GetUserIDFromContext(c)

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := scheduling.Transition(&appointment, models.AppointmentStatus(req.Status), adminID, req.Reason, time.Now()); err != nil {
		respondRejection(c, err)
		return
	}

	if req.ScheduledDate != "" {
		date, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			utils.BadRequest(c, "scheduledDate must be YYYY-MM-DD")
			return
		}
		d := scheduling.DateOnly(date)
		appointment.ScheduledDate = &d
		appointment.ScheduledStart = req.ScheduledStart
		appointment.ScheduledEnd = req.ScheduledEnd
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	notify(h.DB, &models.Notification{
		RecipientID:   appointment.UserID,
		Type:          models.NotificationAppointment,
		Title:         "Appointment " + req.Status,
		Message:       fmt.Sprintf("Your appointment status changed to %s.", req.Status),
		Metadata:      &models.NotificationMeta{AppointmentID: appointment.ID},
		Channel:       models.ChannelInApp,
		TriggerSource: models.ActorAdmin,
	})

	utils.Success(c, "Appointment updated successfully", appointment)
}

// respondRejection maps scheduling rejection kinds onto HTTP statuses.
func respondRejection(c *gin.Context, err error) {
	switch scheduling.KindOf(err) {
	case scheduling.KindNotFound:
		utils.NotFound(c, err.Error())
	case scheduling.KindSlotConflict, scheduling.KindInvalidState:
		utils.Conflict(c, err.Error())
	case scheduling.KindDoctorUnavailable, scheduling.KindProfileMissing,
		scheduling.KindInvalidDate, scheduling.KindInvalidWindow:
		utils.UnprocessableEntity(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
