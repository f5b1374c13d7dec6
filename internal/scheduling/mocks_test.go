package scheduling

import (
	"context"
	"time"

	"clinic-booking-server/internal/models"
)

// storeMock implements Store with overridable function fields. Fields left
// nil behave as empty results.
type storeMock struct {
	GetAppointmentFunc     func(ctx context.Context, id string) (*models.Appointment, error)
	GetAccountFunc         func(ctx context.Context, id string) (*models.User, error)
	GetDoctorProfileFunc   func(ctx context.Context, userID string) (*models.DoctorProfile, error)
	CountSlotConflictsFunc func(ctx context.Context, doctorID string, date time.Time, start string, excludeID string) (int64, error)
	SaveAppointmentFunc    func(ctx context.Context, appt *models.Appointment) error
	CreateNotificationFunc func(ctx context.Context, n *models.Notification) error

	saved    []*models.Appointment
	notified []*models.Notification
}

func (m *storeMock) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	if m.GetAppointmentFunc != nil {
		return m.GetAppointmentFunc(ctx, id)
	}
	return nil, nil
}

func (m *storeMock) GetAccount(ctx context.Context, id string) (*models.User, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, id)
	}
	return nil, nil
}

func (m *storeMock) GetDoctorProfile(ctx context.Context, userID string) (*models.DoctorProfile, error) {
	if m.GetDoctorProfileFunc != nil {
		return m.GetDoctorProfileFunc(ctx, userID)
	}
	return nil, nil
}

func (m *storeMock) CountSlotConflicts(ctx context.Context, doctorID string, date time.Time, start string, excludeID string) (int64, error) {
	if m.CountSlotConflictsFunc != nil {
		return m.CountSlotConflictsFunc(ctx, doctorID, date, start, excludeID)
	}
	return 0, nil
}

func (m *storeMock) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	m.saved = append(m.saved, appt)
	if m.SaveAppointmentFunc != nil {
		return m.SaveAppointmentFunc(ctx, appt)
	}
	return nil
}

func (m *storeMock) CreateNotification(ctx context.Context, n *models.Notification) error {
	m.notified = append(m.notified, n)
	if m.CreateNotificationFunc != nil {
		return m.CreateNotificationFunc(ctx, n)
	}
	return nil
}
