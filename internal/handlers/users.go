package handlers

import (
	"strconv"
	"time"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler handles account management requests (typically admin
// operations) and the public doctor directory.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// DoctorListing pairs a doctor account with its profile for API responses.
type DoctorListing struct {
	models.UserSanitized
	Profile *models.DoctorProfile `json:"profile"`
}

// GetDoctors lists active doctors, optionally filtered by specialty,
// minimum experience, or an available date.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Model(&models.DoctorProfile{})
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialization = ?", specialty)
	}

	var profiles []models.DoctorProfile
	if exp := c.Query("experience"); exp != "" {
		minExp, err := strconv.Atoi(exp)
		if err != nil {
			utils.BadRequest(c, "experience filter must be a number")
			return
		}
		query = query.Where("experience >= ?", minExp)
	}
	if err := query.Find(&profiles).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	var availableOn *time.Time
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			utils.BadRequest(c, "date filter must be YYYY-MM-DD")
			return
		}
		availableOn = &parsed
	}

	listings := make([]DoctorListing, 0, len(profiles))
	for i := range profiles {
		profile := profiles[i]

		if availableOn != nil && !hasSlotOn(profile.Availability, *availableOn) {
			continue
		}

		var doctor models.User
		if err := h.DB.First(&doctor, "id = ? AND role = ?", profile.UserID, models.RoleDoctor).Error; err != nil {
			continue
		}
		if !doctor.IsActive {
			continue
		}
		listings = append(listings, DoctorListing{
			UserSanitized: doctor.Sanitize(),
			Profile:       &profile,
		})
	}

	utils.Success(c, "Doctors fetched successfully", listings)
}

func hasSlotOn(slots []models.AvailabilitySlot, date time.Time) bool {
	for _, slot := range slots {
		sy, sm, sd := slot.Date.Date()
		dy, dm, dd := date.Date()
		if !slot.IsClosed && sy == dy && sm == dm && sd == dd {
			return true
		}
	}
	return false
}

// GetDoctorByID returns a single active doctor with profile.
func (h *UserHandler) GetDoctorByID(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.User
	if err := h.DB.First(&doctor, "id = ? AND role = ?", doctorID, models.RoleDoctor).Error; err != nil || !doctor.IsActive {
		utils.NotFound(c, "Doctor not found")
		return
	}

	var profile models.DoctorProfile
	if err := h.DB.First(&profile, "user_id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Success(c, "Doctor fetched successfully", DoctorListing{UserSanitized: doctor.Sanitize()})
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Doctor fetched successfully", DoctorListing{
		UserSanitized: doctor.Sanitize(),
		Profile:       &profile,
	})
}

// CreateDoctorRequest represents the request body for creating a doctor (admin).
type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=120"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Specialization string `json:"specialization" binding:"required"`
	Experience     int    `json:"experience"`
	Education      string `json:"education"`
	Description    string `json:"description"`

	Availability []models.AvailabilitySlot `json:"availability"`
}

// CreateDoctor handles creating a doctor account with its profile (admin).
func (h *UserHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	email := models.NormalizeEmail(req.Email)

	var existingUser models.User
	if err := h.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		utils.Conflict(c, "Email already registered")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    email,
		Role:     models.RoleDoctor,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}
	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	profile := models.DoctorProfile{
		UserID:         user.ID,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Education:      req.Education,
		Description:    req.Description,
		Availability:   req.Availability,
	}
	if err := h.DB.Create(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor profile: "+err.Error())
		return
	}

	utils.Created(c, "Doctor created successfully", DoctorListing{
		UserSanitized: user.Sanitize(),
		Profile:       &profile,
	})
}

// UpdateDoctorStatusRequest toggles a doctor's active flag.
type UpdateDoctorStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateDoctorStatus activates or deactivates a doctor account (admin).
func (h *UserHandler) UpdateDoctorStatus(c *gin.Context) {
	doctorID := c.Param("id")

	var req UpdateDoctorStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.User
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil || doctor.Role != models.RoleDoctor {
		utils.NotFound(c, "Doctor not found")
		return
	}

	doctor.IsActive = *req.IsActive
	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor status: "+err.Error())
		return
	}

	utils.Success(c, "Doctor status updated", doctor.Sanitize())
}

// DeleteDoctor removes a doctor account and its profile (admin). Appointments
// referencing the doctor are kept; deletion is account cleanup only.
func (h *UserHandler) DeleteDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.User
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil || doctor.Role != models.RoleDoctor {
		utils.NotFound(c, "Doctor not found")
		return
	}

	if err := h.DB.Where("user_id = ?", doctor.ID).Delete(&models.DoctorProfile{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete doctor profile: "+err.Error())
		return
	}
	if err := h.DB.Delete(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor deleted successfully", nil)
}

// GetPatients lists user-role accounts with their medical profiles (admin).
func (h *UserHandler) GetPatients(c *gin.Context) {
	var patients []models.User
	if err := h.DB.Where("role = ?", models.RoleUser).Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	type patientListing struct {
		models.UserSanitized
		Profile *models.UserProfile `json:"profile"`
	}

	listings := make([]patientListing, 0, len(patients))
	for _, p := range patients {
		entry := patientListing{UserSanitized: p.Sanitize()}
		var profile models.UserProfile
		if err := h.DB.Where("user_id = ?", p.ID).First(&profile).Error; err == nil {
			entry.Profile = &profile
		}
		listings = append(listings, entry)
	}

	utils.Success(c, "Patients fetched successfully", listings)
}
