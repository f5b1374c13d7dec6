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

// DoctorHandler handles requests made by doctor accounts about their own
// calendar and appointments.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// GetDashboard returns the doctor's profile, appointment stats and upcoming
// appointments.
func (h *DoctorHandler) GetDashboard(c *gin.Context) {
	doctorID, _ := middleware.GetUserIDFromContext(c)

	var profile models.DoctorProfile
	if err := h.DB.First(&profile, "user_id = ?", doctorID).Error; err != nil && err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to load profile: "+err.Error())
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("doctor_id = ?", doctorID).Order("scheduled_date asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to load appointments: "+err.Error())
		return
	}

	var pending, confirmed, completed int
	var upcoming []models.Appointment
	for _, appt := range appointments {
		switch appt.Status {
		case models.StatusPending:
			pending++
		case models.StatusConfirmed:
			confirmed++
		case models.StatusCompleted:
			completed++
		}
		if appt.Status.IsLive() && len(upcoming) < 10 {
			upcoming = append(upcoming, appt)
		}
	}

	utils.Success(c, "Dashboard loaded", gin.H{
		"profile": profile,
		"stats": gin.H{
			"totalAppointments": len(appointments),
			"pending":           pending,
			"confirmed":         confirmed,
			"completed":         completed,
		},
		"upcomingAppointments": upcoming,
	})
}

// GetPatients lists the distinct users who have appointments with this
// doctor, with their most recent appointment.
func (h *DoctorHandler) GetPatients(c *gin.Context) {
	doctorID, _ := middleware.GetUserIDFromContext(c)

	var appointments []models.Appointment
	if err := h.DB.Where("doctor_id = ?", doctorID).Order("created_at desc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to load patients: "+err.Error())
		return
	}

	type patientEntry struct {
		User            models.UserSanitized `json:"user"`
		LastAppointment models.Appointment   `json:"lastAppointment"`
	}

	seen := make(map[string]bool)
	entries := make([]patientEntry, 0)
	for _, appt := range appointments {
		if seen[appt.UserID] {
			continue
		}
		var user models.User
		if err := h.DB.First(&user, "id = ?", appt.UserID).Error; err != nil {
			continue
		}
		seen[appt.UserID] = true
		entries = append(entries, patientEntry{User: user.Sanitize(), LastAppointment: appt})
	}

	utils.Success(c, "Patients fetched successfully", entries)
}

// UpdateAvailabilityRequest replaces the doctor's availability calendar.
type UpdateAvailabilityRequest struct {
	Availability      []models.AvailabilitySlot `json:"availability" binding:"required"`
	EmergencyHolidays []time.Time               `json:"emergencyHolidays"`
}

// UpdateAvailability replaces the doctor's availability slots. Slot times
// must be zero-padded HH:MM values so the matcher can compare them.
func (h *DoctorHandler) UpdateAvailability(c *gin.Context) {
	doctorID, _ := middleware.GetUserIDFromContext(c)

	var req UpdateAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	for _, slot := range req.Availability {
		if _, err := scheduling.ParseClock(slot.StartTime); err != nil {
			utils.BadRequest(c, "slot times must be zero-padded HH:MM values")
			return
		}
		if _, err := scheduling.ParseClock(slot.EndTime); err != nil {
			utils.BadRequest(c, "slot times must be zero-padded HH:MM values")
			return
		}
	}

	var profile models.DoctorProfile
	if err := h.DB.First(&profile, "user_id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	profile.Availability = req.Availability
	if req.EmergencyHolidays != nil {
		profile.EmergencyHolidays = req.EmergencyHolidays
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update availability: "+err.Error())
		return
	}

	// Let users with a live appointment know the calendar changed.
	var affected []models.Appointment
	if err := h.DB.Where("doctor_id = ? AND status IN ?", doctorID, models.LiveStatuses).Find(&affected).Error; err == nil {
		seen := make(map[string]bool)
		for _, appt := range affected {
			if seen[appt.UserID] {
				continue
			}
			seen[appt.UserID] = true
			notify(h.DB, &models.Notification{
				RecipientID:   appt.UserID,
				Type:          models.NotificationAvailability,
				Title:         "Doctor availability updated",
				Message:       "Your doctor updated their availability calendar. Please review your upcoming appointments.",
				Metadata:      &models.NotificationMeta{DoctorID: doctorID},
				Channel:       models.ChannelInApp,
				TriggerSource: models.ActorDoctor,
			})
		}
	}

	utils.Success(c, "Availability updated", profile)
}

// UpdateDoctorProfileRequest carries partial doctor profile updates.
type UpdateDoctorProfileRequest struct {
	Name            string   `json:"name"`
	Specialization  *string  `json:"specialization"`
	Experience      *int     `json:"experience"`
	Education       *string  `json:"education"`
	Description     *string  `json:"description"`
	ConsultationFee *float64 `json:"consultationFee"`
}

// UpdateProfile updates the doctor's account name and profile details.
func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	doctorID, _ := middleware.GetUserIDFromContext(c)

	var req UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var doctor models.User
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	if req.Name != "" {
		doctor.Name = req.Name
		if err := h.DB.Save(&doctor).Error; err != nil {
			utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
			return
		}
	}

	var profile models.DoctorProfile
	err := h.DB.First(&profile, "user_id = ?", doctorID).Error
	if err == gorm.ErrRecordNotFound {
		profile = models.DoctorProfile{UserID: doctorID}
	} else if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.Education != nil {
		profile.Education = *req.Education
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = *req.ConsultationFee
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", gin.H{
		"user":    doctor.Sanitize(),
		"profile": profile,
	})
}

// UpdateAppointmentRequest carries a doctor's status update, note and
// prescription for one of their appointments.
type UpdateAppointmentRequest struct {
	Status       string          `json:"status" binding:"omitempty,oneof=confirmed rescheduled completed cancelled declined"`
	Notes        string          `json:"notes"`
	Prescription *models.FileRef `json:"prescription"`
	FollowUpDate *string         `json:"followUpDate"`
	Reason       string          `json:"reason"`
}

// UpdateAppointment lets the assigned doctor update status, append a note,
// or attach a prescription reference. Note and prescription appends are
// valid in any state; status changes go through the transition rules.
func (h *DoctorHandler) UpdateAppointment(c *gin.Context) {
	doctorID, _ := middleware.GetUserIDFromContext(c)
	appointmentID := c.Param("id")

	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND doctor_id = ?", appointmentID, doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	now := time.Now()

	if req.Status != "" {
		if err := scheduling.Transition(&appointment, models.AppointmentStatus(req.Status), doctorID, req.Reason, now); err != nil {
			utils.Conflict(c, err.Error())
			return
		}
	}

	if req.Notes != "" {
		appointment.AppendNote(doctorID, models.ActorDoctor, req.Notes, now)
	}
	if req.Prescription != nil {
		prescription := *req.Prescription
		if prescription.UploadedAt.IsZero() {
			prescription.UploadedAt = now
		}
		appointment.Prescriptions = append(appointment.Prescriptions, prescription)
	}
	if req.FollowUpDate != nil {
		followUp, err := time.Parse("2006-01-02", *req.FollowUpDate)
		if err != nil {
			utils.BadRequest(c, "followUpDate must be YYYY-MM-DD")
			return
		}
		appointment.FollowUpDate = &followUp
	}
	appointment.UpdatedBy = doctorID

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	if req.Status != "" {
		notify(h.DB, &models.Notification{
			RecipientID:   appointment.UserID,
			Type:          models.NotificationAppointment,
			Title:         "Appointment " + req.Status,
			Message:       "Your doctor updated the appointment status to " + req.Status + ".",
			Metadata:      &models.NotificationMeta{AppointmentID: appointment.ID},
			Channel:       models.ChannelInApp,
			TriggerSource: models.ActorDoctor,
		})
	}

	utils.Success(c, "Appointment updated", appointment)
}
