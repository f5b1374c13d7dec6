package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-booking-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 28, 15, 4, 5, 0, time.UTC)

func pendingAppointment() *models.Appointment {
	appt := &models.Appointment{
		UserID:          "user-1",
		DiseaseCategory: "cardiology",
		PreferredDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		PreferredStart:  "10:00",
		PreferredEnd:    "10:30",
		Status:          models.StatusPending,
	}
	appt.ID = "appt-1"
	return appt
}

func activeDoctor() *models.User {
	doc := &models.User{
		Name:     "Ada Osei",
		Email:    "ada@clinic.test",
		Role:     models.RoleDoctor,
		IsActive: true,
	}
	doc.ID = "doc-1"
	return doc
}

func coveringProfile(day time.Time) *models.DoctorProfile {
	return &models.DoctorProfile{
		UserID: "doc-1",
		Availability: []models.AvailabilitySlot{
			{Date: day, StartTime: "08:00", EndTime: "17:00", MaxPatients: 10},
		},
	}
}

func happyStore(appt *models.Appointment, doctor *models.User, profile *models.DoctorProfile) *storeMock {
	return &storeMock{
		GetAppointmentFunc: func(ctx context.Context, id string) (*models.Appointment, error) {
			if appt != nil && id == appt.ID {
				return appt, nil
			}
			return nil, nil
		},
		GetAccountFunc: func(ctx context.Context, id string) (*models.User, error) {
			if doctor != nil && id == doctor.ID {
				return doctor, nil
			}
			return nil, nil
		},
		GetDoctorProfileFunc: func(ctx context.Context, userID string) (*models.DoctorProfile, error) {
			if profile != nil && userID == profile.UserID {
				return profile, nil
			}
			return nil, nil
		},
	}
}

func serviceAt(store Store) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAssignDoctorHappyPath(t *testing.T) {
	appt := pendingAppointment()
	store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
	svc := serviceAt(store)

	got, warning, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1",
		DoctorID:      "doc-1",
		Date:          "2024-06-01",
		Start:         "10:00",
		End:           "10:30",
		AdminID:       "admin-1",
	})
	require.NoError(t, err)
	assert.False(t, warning)

	assert.Equal(t, models.StatusConfirmed, got.Status)
	require.NotNil(t, got.DoctorID)
	assert.Equal(t, "doc-1", *got.DoctorID)
	require.NotNil(t, got.ScheduledDate)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *got.ScheduledDate)
	assert.Equal(t, "10:00", got.ScheduledStart)
	assert.Equal(t, "10:30", got.ScheduledEnd)
	assert.Equal(t, "admin-1", got.AssignedBy)
	assert.Equal(t, "admin-1", got.UpdatedBy)
	assert.Contains(t, got.ConfirmationMessage, "Dr. Ada Osei")
	assert.Contains(t, got.ConfirmationMessage, "2024-06-01")
	require.NotNil(t, got.ConfirmationSentAt)
	assert.Equal(t, fixedNow, *got.ConfirmationSentAt)

	require.Len(t, store.saved, 1)
	require.Len(t, store.notified, 1)
	n := store.notified[0]
	assert.Equal(t, "user-1", n.RecipientID)
	assert.Equal(t, models.NotificationAppointment, n.Type)
	require.NotNil(t, n.Metadata)
	assert.Equal(t, "appt-1", n.Metadata.AppointmentID)
}

func TestAssignDoctorWarnsOnEmptyCalendar(t *testing.T) {
	appt := pendingAppointment()
	profile := &models.DoctorProfile{UserID: "doc-1"}
	svc := serviceAt(happyStore(appt, activeDoctor(), profile))

	got, warning, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1",
	})
	require.NoError(t, err)
	assert.True(t, warning, "empty calendar warns but does not block")
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

func TestAssignDoctorWarnsOutsideConfiguredHours(t *testing.T) {
	appt := pendingAppointment()
	profile := &models.DoctorProfile{
		UserID: "doc-1",
		Availability: []models.AvailabilitySlot{
			{Date: appt.PreferredDate, StartTime: "14:00", EndTime: "16:00", MaxPatients: 5},
		},
	}
	svc := serviceAt(happyStore(appt, activeDoctor(), profile))

	got, warning, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1", DoctorID: "doc-1", Start: "10:00", End: "10:30", AdminID: "admin-1",
	})
	require.NoError(t, err)
	assert.True(t, warning)
	assert.Equal(t, "10:00", got.ScheduledStart)
}

func TestAssignDoctorDefaultWindow(t *testing.T) {
	appt := pendingAppointment()
	appt.PreferredStart = ""
	appt.PreferredEnd = ""
	svc := serviceAt(happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate)))

	got, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowStart, got.ScheduledStart)
	assert.Equal(t, DefaultWindowEnd, got.ScheduledEnd)
}

func TestAssignDoctorFallsBackToPreferredDate(t *testing.T) {
	appt := pendingAppointment()
	svc := serviceAt(happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate)))

	got, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1",
	})
	require.NoError(t, err)
	require.NotNil(t, got.ScheduledDate)
	assert.Equal(t, appt.PreferredDate, *got.ScheduledDate)
}

func TestAssignDoctorSlotConflictBlocks(t *testing.T) {
	appt := pendingAppointment()
	store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
	store.CountSlotConflictsFunc = func(ctx context.Context, doctorID string, date time.Time, start string, excludeID string) (int64, error) {
		return 1, nil
	}
	svc := serviceAt(store)

	_, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1",
	})
	require.Error(t, err)
	assert.Equal(t, KindSlotConflict, KindOf(err))
	assert.Empty(t, store.saved, "a conflicting assignment must not be persisted")
	assert.Equal(t, models.StatusPending, appt.Status)
}

func TestAssignDoctorExcludesItselfFromConflictCheck(t *testing.T) {
	appt := pendingAppointment()
	doctorID := "doc-1"
	appt.Status = models.StatusRescheduled
	appt.DoctorID = &doctorID

	store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
	var gotExclude string
	store.CountSlotConflictsFunc = func(ctx context.Context, doctorID string, date time.Time, start string, excludeID string) (int64, error) {
		gotExclude = excludeID
		return 0, nil
	}
	svc := serviceAt(store)

	_, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "appt-1", gotExclude, "the appointment must not conflict with itself")
}

func TestAssignDoctorAppendsAdminNote(t *testing.T) {
	appt := pendingAppointment()
	svc := serviceAt(happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate)))

	got, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1",
		Notes: "bring previous ECG results",
	})
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "admin-1", got.Notes[0].Author)
	assert.Equal(t, models.ActorAdmin, got.Notes[0].Role)
	assert.Equal(t, "bring previous ECG results", got.Notes[0].Content)
	assert.Equal(t, fixedNow, got.Notes[0].CreatedAt)
}

func TestAssignDoctorRejections(t *testing.T) {
	confirmedDoctor := "doc-9"

	tests := []struct {
		name  string
		setup func() (*storeMock, AssignmentInput)
		want  RejectionKind
	}{
		{
			name: "appointment not found",
			setup: func() (*storeMock, AssignmentInput) {
				store := happyStore(nil, activeDoctor(), coveringProfile(time.Now()))
				return store, AssignmentInput{AppointmentID: "missing", DoctorID: "doc-1", AdminID: "admin-1"}
			},
			want: KindNotFound,
		},
		{
			name: "already confirmed with a doctor",
			setup: func() (*storeMock, AssignmentInput) {
				appt := pendingAppointment()
				appt.Status = models.StatusConfirmed
				appt.DoctorID = &confirmedDoctor
				store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
				return store, AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1"}
			},
			want: KindInvalidState,
		},
		{
			name: "doctor account missing",
			setup: func() (*storeMock, AssignmentInput) {
				appt := pendingAppointment()
				store := happyStore(appt, nil, nil)
				return store, AssignmentInput{AppointmentID: "appt-1", DoctorID: "ghost", AdminID: "admin-1"}
			},
			want: KindDoctorUnavailable,
		},
		{
			name: "account is not a doctor",
			setup: func() (*storeMock, AssignmentInput) {
				appt := pendingAppointment()
				patient := activeDoctor()
				patient.Role = models.RoleUser
				store := happyStore(appt, patient, nil)
				return store, AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1"}
			},
			want: KindDoctorUnavailable,
		},
		{
			name: "doctor deactivated",
			setup: func() (*storeMock, AssignmentInput) {
				appt := pendingAppointment()
				doc := activeDoctor()
				doc.IsActive = false
				store := happyStore(appt, doc, nil)
				return store, AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1"}
			},
			want: KindDoctorUnavailable,
		},
		{
			name: "no availability profile",
			setup: func() (*storeMock, AssignmentInput) {
				appt := pendingAppointment()
				store := happyStore(appt, activeDoctor(), nil)
				return store, AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1"}
			},
			want: KindProfileMissing,
		},
		{
			name: "malformed requested date",
			setup: func() (*storeMock, AssignmentInput) {
				appt := pendingAppointment()
				store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
				return store, AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1", Date: "06/01/2024"}
			},
			want: KindInvalidDate,
		},
		{
			name: "no date anywhere",
			setup: func() (*storeMock, AssignmentInput) {
				appt := pendingAppointment()
				appt.PreferredDate = time.Time{}
				store := happyStore(appt, activeDoctor(), coveringProfile(time.Now()))
				return store, AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1"}
			},
			want: KindInvalidDate,
		},
		{
			name: "malformed start time",
			setup: func() (*storeMock, AssignmentInput) {
				appt := pendingAppointment()
				store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
				return store, AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1", Start: "9am"}
			},
			want: KindInvalidWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, in := tt.setup()
			svc := serviceAt(store)

			_, _, err := svc.AssignDoctor(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.Empty(t, store.saved)
		})
	}
}

func TestAssignDoctorStoreFailures(t *testing.T) {
	dbErr := errors.New("connection reset")

	t.Run("lookup failure", func(t *testing.T) {
		store := &storeMock{
			GetAppointmentFunc: func(ctx context.Context, id string) (*models.Appointment, error) {
				return nil, dbErr
			},
		}
		svc := serviceAt(store)
		_, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1"})
		require.Error(t, err)
		assert.Equal(t, KindStoreFailure, KindOf(err))
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("conflict count failure", func(t *testing.T) {
		appt := pendingAppointment()
		store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
		store.CountSlotConflictsFunc = func(ctx context.Context, doctorID string, date time.Time, start string, excludeID string) (int64, error) {
			return 0, dbErr
		}
		svc := serviceAt(store)
		_, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1"})
		require.Error(t, err)
		assert.Equal(t, KindStoreFailure, KindOf(err))
	})

	t.Run("save failure", func(t *testing.T) {
		appt := pendingAppointment()
		store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
		store.SaveAppointmentFunc = func(ctx context.Context, a *models.Appointment) error {
			return dbErr
		}
		svc := serviceAt(store)
		_, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1"})
		require.Error(t, err)
		assert.Equal(t, KindStoreFailure, KindOf(err))
		assert.Empty(t, store.notified, "no notification when the assignment did not commit")
	})
}

func TestAssignDoctorNotificationFailureIsSwallowed(t *testing.T) {
	appt := pendingAppointment()
	store := happyStore(appt, activeDoctor(), coveringProfile(appt.PreferredDate))
	store.CreateNotificationFunc = func(ctx context.Context, n *models.Notification) error {
		return errors.New("notification table gone")
	}
	svc := serviceAt(store)

	got, _, err := svc.AssignDoctor(context.Background(), AssignmentInput{
		AppointmentID: "appt-1", DoctorID: "doc-1", AdminID: "admin-1",
	})
	require.NoError(t, err, "assignment is committed before the notification write")
	assert.Equal(t, models.StatusConfirmed, got.Status)
}
