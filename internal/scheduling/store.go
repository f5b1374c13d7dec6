package scheduling

import (
	"context"
	"errors"
	"time"

	"clinic-booking-server/internal/models"

	"gorm.io/gorm"
)

// Store is the record-store boundary the scheduling core depends on. The
// core does not know or care about the storage engine; handlers construct it
// over GORM, tests over an in-memory fake.
type Store interface {
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetAccount(ctx context.Context, id string) (*models.User, error)
	GetDoctorProfile(ctx context.Context, userID string) (*models.DoctorProfile, error)
	// CountSlotConflicts counts live appointments for the doctor at the exact
	// (date, start) pair, excluding excludeID when non-empty.
	CountSlotConflicts(ctx context.Context, doctorID string, date time.Time, start string, excludeID string) (int64, error)
	SaveAppointment(ctx context.Context, appt *models.Appointment) error
	CreateNotification(ctx context.Context, n *models.Notification) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a GORM connection in the Store interface.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.WithContext(ctx).First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *gormStore) GetAccount(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) GetDoctorProfile(ctx context.Context, userID string) (*models.DoctorProfile, error) {
	var profile models.DoctorProfile
	err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *gormStore) CountSlotConflicts(ctx context.Context, doctorID string, date time.Time, start string, excludeID string) (int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND scheduled_date = ? AND scheduled_start = ?", doctorID, DateOnly(date), start).
		Where("status IN ?", models.LiveStatuses)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *gormStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.db.WithContext(ctx).Save(appt).Error
}

func (s *gormStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}
