package scheduling

import (
	"testing"
	"time"

	"clinic-booking-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to models.AppointmentStatus
	}{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusPending, models.StatusDeclined},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusConfirmed, models.StatusRescheduled},
		{models.StatusConfirmed, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusCancelled},
		{models.StatusRescheduled, models.StatusConfirmed},
		{models.StatusRescheduled, models.StatusCancelled},
		{models.StatusRescheduled, models.StatusDeclined},
	}
	for _, tt := range allowed {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}

	forbidden := []struct {
		from, to models.AppointmentStatus
	}{
		{models.StatusPending, models.StatusCompleted},
		{models.StatusPending, models.StatusRescheduled},
		{models.StatusCompleted, models.StatusConfirmed},
		{models.StatusCancelled, models.StatusPending},
		{models.StatusDeclined, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusPending},
	}
	for _, tt := range forbidden {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s should be forbidden", tt.from, tt.to)
	}
}

func TestTransitionCompletedStampsTimestamp(t *testing.T) {
	doctorID := "doc-1"
	appt := &models.Appointment{Status: models.StatusConfirmed, DoctorID: &doctorID}
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	err := Transition(appt, models.StatusCompleted, "doc-1", "", now)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, appt.Status)
	require.NotNil(t, appt.CompletedAt)
	assert.Equal(t, now, *appt.CompletedAt)
	assert.Equal(t, "doc-1", appt.UpdatedBy)
}

func TestTransitionCancelledDefaultsReason(t *testing.T) {
	appt := &models.Appointment{Status: models.StatusPending}

	err := Transition(appt, models.StatusCancelled, "user-1", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, DefaultCancellationReason, appt.CancellationReason)

	appt2 := &models.Appointment{Status: models.StatusPending}
	err = Transition(appt2, models.StatusCancelled, "user-1", "feeling better", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "feeling better", appt2.CancellationReason)
}

func TestTransitionTerminalStatesAreFrozen(t *testing.T) {
	for _, status := range []models.AppointmentStatus{
		models.StatusCompleted, models.StatusCancelled, models.StatusDeclined,
	} {
		appt := &models.Appointment{Status: status}
		err := Transition(appt, models.StatusCancelled, "admin-1", "", time.Now())
		require.Error(t, err, "terminal status %s", status)
		assert.Equal(t, KindInvalidState, KindOf(err))
		assert.Equal(t, status, appt.Status, "status must be unchanged on rejection")
	}
}

func TestTransitionConfirmRequiresDoctor(t *testing.T) {
	appt := &models.Appointment{Status: models.StatusPending}
	err := Transition(appt, models.StatusConfirmed, "admin-1", "", time.Now())
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestRescheduleByUserAppendsHistoryAndKeepsDoctor(t *testing.T) {
	doctorID := "doc-1"
	scheduled := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	appt := &models.Appointment{
		Status:        models.StatusConfirmed,
		DoctorID:      &doctorID,
		PreferredDate: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		ScheduledDate: &scheduled,
	}

	newDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	err := RescheduleByUser(appt, newDate, "11:00", "11:30", "travel", "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRescheduled, appt.Status)
	require.NotNil(t, appt.DoctorID)
	assert.Equal(t, "doc-1", *appt.DoctorID)
	require.NotNil(t, appt.ScheduledDate)
	assert.Equal(t, newDate, *appt.ScheduledDate)
	assert.Equal(t, "11:00", appt.ScheduledStart)

	require.Len(t, appt.RescheduleHistory, 1)
	entry := appt.RescheduleHistory[0]
	assert.Equal(t, scheduled, entry.PreviousDate, "previous committed date goes into history")
	assert.Equal(t, newDate, entry.NewDate)
	assert.Equal(t, models.ActorUser, entry.RequestedBy)
	assert.Equal(t, "user-1", entry.ActionedBy)
	assert.Equal(t, now, entry.ActionedAt)
}

func TestRescheduleByUserFallsBackToPreferredDate(t *testing.T) {
	appt := &models.Appointment{
		Status:        models.StatusPending,
		PreferredDate: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	}

	newDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	err := RescheduleByUser(appt, newDate, "", "", "", "user-1", time.Now())
	require.NoError(t, err)

	require.Len(t, appt.RescheduleHistory, 1)
	assert.Equal(t, appt.PreferredDate, appt.RescheduleHistory[0].PreviousDate)
}

func TestRescheduleByUserRejectsTerminal(t *testing.T) {
	appt := &models.Appointment{Status: models.StatusCompleted}
	err := RescheduleByUser(appt, time.Now(), "", "", "", "user-1", time.Now())
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}
