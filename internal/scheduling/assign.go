package scheduling

import (
	"context"
	"time"

	"clinic-booking-server/internal/models"

	"github.com/rs/zerolog/log"
)

// Default window applied when neither the admin nor the original request
// carries a start/end time.
const (
	DefaultWindowStart = "09:00"
	DefaultWindowEnd   = "09:30"
)

// Service runs the scheduling core: assignment, conflict detection and
// status transitions over a record store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a scheduling service over a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// AssignmentInput is an admin's request to bind a doctor to an appointment.
// Date is "YYYY-MM-DD"; Start/End are "HH:MM". Empty values fall back to the
// appointment's preferred window, then to the system default.
type AssignmentInput struct {
	AppointmentID string
	DoctorID      string
	Date          string
	Start         string
	End           string
	AdminID       string
	Notes         string
}

// AssignDoctor validates and commits a doctor assignment. It returns the
// updated appointment and an availability warning flag: true means the
// assignment landed outside the doctor's configured hours (or the doctor has
// no configured hours) but was committed anyway. Slot conflicts are the only
// availability-related hard block. All other failures surface as Rejection
// values branchable with KindOf.
func (s *Service) AssignDoctor(ctx context.Context, in AssignmentInput) (*models.Appointment, bool, error) {
	appt, err := s.store.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, false, storeFailure("appointment lookup failed", err)
	}
	if appt == nil {
		return nil, false, reject(KindNotFound, "appointment not found")
	}

	// A stray re-assignment must not clobber a confirmed or completed
	// appointment.
	if appt.DoctorID != nil && appt.Status != models.StatusPending && appt.Status != models.StatusRescheduled {
		return nil, false, reject(KindInvalidState, "only pending or rescheduled appointments can be (re-)assigned")
	}

	doctor, err := s.store.GetAccount(ctx, in.DoctorID)
	if err != nil {
		return nil, false, storeFailure("doctor lookup failed", err)
	}
	if doctor == nil || doctor.Role != models.RoleDoctor || !doctor.IsActive {
		return nil, false, reject(KindDoctorUnavailable, "doctor not found, not a doctor, or inactive")
	}

	profile, err := s.store.GetDoctorProfile(ctx, doctor.ID)
	if err != nil {
		return nil, false, storeFailure("doctor profile lookup failed", err)
	}
	if profile == nil {
		return nil, false, reject(KindProfileMissing, "doctor has no availability profile configured")
	}

	date, err := s.effectiveDate(in.Date, appt)
	if err != nil {
		return nil, false, err
	}
	start, end, err := effectiveWindow(in, appt)
	if err != nil {
		return nil, false, err
	}

	// Availability mismatches warn, they do not block: admins may override
	// configured hours, and legacy doctors may have empty calendars.
	warning := MatchAvailability(profile, date, start, end) != SlotCovered

	conflict, err := s.HasConflict(ctx, doctor.ID, date, start, appt.ID)
	if err != nil {
		return nil, false, err
	}
	if conflict {
		return nil, false, reject(KindSlotConflict, "doctor already has an appointment at this date and time")
	}

	now := s.now()
	confirm(appt, doctor, date, start, end, in.AdminID, now)
	if in.Notes != "" {
		appt.AppendNote(in.AdminID, models.ActorAdmin, in.Notes, now)
	}

	if err := s.store.SaveAppointment(ctx, appt); err != nil {
		return nil, false, storeFailure("failed to persist assignment", err)
	}

	s.notifyAssignment(ctx, appt, doctor)
	return appt, warning, nil
}

func (s *Service) effectiveDate(requested string, appt *models.Appointment) (time.Time, error) {
	if requested != "" {
		date, err := time.Parse("2006-01-02", requested)
		if err != nil {
			return time.Time{}, reject(KindInvalidDate, "requested date is not a valid YYYY-MM-DD date")
		}
		return date, nil
	}
	if appt.PreferredDate.IsZero() {
		return time.Time{}, reject(KindInvalidDate, "no requested date and the appointment has no preferred date")
	}
	return appt.PreferredDate, nil
}

func effectiveWindow(in AssignmentInput, appt *models.Appointment) (string, string, error) {
	start := firstNonEmpty(in.Start, appt.PreferredStart, DefaultWindowStart)
	end := firstNonEmpty(in.End, appt.PreferredEnd, DefaultWindowEnd)
	if start == "" || end == "" {
		return "", "", reject(KindInvalidWindow, "no usable start/end time for the appointment window")
	}
	if _, err := ParseClock(start); err != nil {
		return "", "", reject(KindInvalidWindow, "start time must be a zero-padded HH:MM value")
	}
	if _, err := ParseClock(end); err != nil {
		return "", "", reject(KindInvalidWindow, "end time must be a zero-padded HH:MM value")
	}
	return start, end, nil
}

// notifyAssignment records an in-app notification for the requesting user.
// The assignment is already committed; a notification write failure is
// logged, not surfaced.
func (s *Service) notifyAssignment(ctx context.Context, appt *models.Appointment, doctor *models.User) {
	meta := &models.NotificationMeta{
		AppointmentID: appt.ID,
		DoctorID:      doctor.ID,
		Date:          appt.ScheduledDate,
		StartTime:     appt.ScheduledStart,
	}
	n := &models.Notification{
		RecipientID:   appt.UserID,
		Type:          models.NotificationAppointment,
		Title:         "Appointment confirmed",
		Message:       appt.ConfirmationMessage,
		Metadata:      meta,
		Channel:       models.ChannelInApp,
		TriggerSource: models.ActorAdmin,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		log.Error().Err(err).Str("appointmentId", appt.ID).Msg("failed to record assignment notification")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
