package scheduling

import (
	"fmt"
	"time"

	"clinic-booking-server/internal/models"
)

// DefaultCancellationReason is used when a user cancels without giving one.
const DefaultCancellationReason = "Cancelled by user"

// transitions is the legal status graph. Completed, cancelled and declined
// are terminal.
var transitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:     {models.StatusConfirmed, models.StatusDeclined, models.StatusCancelled},
	models.StatusConfirmed:   {models.StatusRescheduled, models.StatusCompleted, models.StatusCancelled},
	models.StatusRescheduled: {models.StatusConfirmed, models.StatusCancelled, models.StatusDeclined},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition applies a status change with its side effects. It is the single
// entry point for doctor- and admin-driven status updates; assignment has
// its own commit path in AssignDoctor. Note and prescription appends are not
// transitions and stay valid in any state.
func Transition(appt *models.Appointment, to models.AppointmentStatus, actorID string, reason string, now time.Time) error {
	if appt.Status.IsTerminal() {
		return reject(KindInvalidState, fmt.Sprintf("appointment is %s and can no longer change status", appt.Status))
	}
	if !CanTransition(appt.Status, to) {
		return reject(KindInvalidState, fmt.Sprintf("cannot move appointment from %s to %s", appt.Status, to))
	}
	// A confirmed appointment always has a doctor.
	if to == models.StatusConfirmed && appt.DoctorID == nil {
		return reject(KindInvalidState, "cannot confirm an appointment without an assigned doctor")
	}

	appt.Status = to
	appt.UpdatedBy = actorID

	switch to {
	case models.StatusCompleted:
		t := now
		appt.CompletedAt = &t
	case models.StatusCancelled:
		if reason == "" {
			reason = DefaultCancellationReason
		}
		appt.CancellationReason = reason
	case models.StatusDeclined:
		if reason != "" {
			appt.CancellationReason = reason
		}
	}
	return nil
}

// RescheduleByUser applies a user-initiated reschedule: the previous
// committed (or preferred) date goes into the append-only history, the
// scheduled fields take the new proposal, and the assigned doctor is kept.
func RescheduleByUser(appt *models.Appointment, newDate time.Time, newStart, newEnd, reason, actorID string, now time.Time) error {
	if appt.Status.IsTerminal() {
		return reject(KindInvalidState, fmt.Sprintf("appointment is %s and can no longer be rescheduled", appt.Status))
	}

	previous := appt.PreferredDate
	if appt.ScheduledDate != nil {
		previous = *appt.ScheduledDate
	}
	appt.AppendReschedule(models.RescheduleEntry{
		PreviousDate: previous,
		NewDate:      newDate,
		Reason:       reason,
		RequestedBy:  models.ActorUser,
		ActionedBy:   actorID,
		ActionedAt:   now,
	})

	d := DateOnly(newDate)
	appt.Status = models.StatusRescheduled
	appt.ScheduledDate = &d
	appt.ScheduledStart = newStart
	appt.ScheduledEnd = newEnd
	appt.UpdatedBy = actorID
	return nil
}

// confirm commits an assignment onto the appointment: doctor, schedule,
// audit fields, confirmation message and timestamp.
func confirm(appt *models.Appointment, doctor *models.User, date time.Time, start, end, adminID string, now time.Time) {
	d := DateOnly(date)
	doctorID := doctor.ID

	appt.DoctorID = &doctorID
	appt.Status = models.StatusConfirmed
	appt.ScheduledDate = &d
	appt.ScheduledStart = start
	appt.ScheduledEnd = end
	appt.AssignedBy = adminID
	appt.UpdatedBy = adminID
	appt.ConfirmationMessage = fmt.Sprintf(
		"Your appointment with Dr. %s is confirmed for %s from %s to %s.",
		doctor.Name, d.Format("2006-01-02"), start, end,
	)
	t := now
	appt.ConfirmationSentAt = &t
}
