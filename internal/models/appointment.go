package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pending"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusDeclined    AppointmentStatus = "declined"
)

// IsLive reports whether the status is not yet terminally resolved.
func (s AppointmentStatus) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusRescheduled
}

// IsTerminal reports whether the status permits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDeclined
}

// LiveStatuses lists every status counted by the slot conflict check.
var LiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusRescheduled}

// RescheduleEntry records one reschedule of an appointment. Entries are
// append-only; they are never mutated or removed.
type RescheduleEntry struct {
	PreviousDate time.Time `json:"previousDate"`
	NewDate      time.Time `json:"newDate"`
	Reason       string    `json:"reason,omitempty"`
	RequestedBy  ActorRole `json:"requestedBy"`
	ActionedBy   string    `json:"actionedBy,omitempty"`
	ActionedAt   time.Time `json:"actionedAt"`
}

// Note is a free-text annotation on an appointment. Append-only.
type Note struct {
	Author    string    `json:"author"`
	Role      ActorRole `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// FileRef is an opaque reference to an uploaded file (prescription,
// document, medical report). The server stores metadata only.
type FileRef struct {
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Appointment represents a booking request and its scheduling lifecycle.
// Created by a user with status pending and no doctor; an admin later binds
// a doctor and a concrete schedule to it.
type Appointment struct {
	BaseModel
	UserID   string  `gorm:"size:36;index;not null" json:"userId"`
	DoctorID *string `gorm:"size:36;index" json:"doctorId"`

	DiseaseCategory string `gorm:"size:120;not null" json:"diseaseCategory"`
	Symptoms        string `gorm:"type:text" json:"symptoms,omitempty"`
	Details         string `gorm:"type:text" json:"details,omitempty"`

	// What the user asked for.
	PreferredDate  time.Time `gorm:"not null" json:"preferredDate"`
	PreferredStart string    `gorm:"size:5" json:"preferredStart,omitempty"`
	PreferredEnd   string    `gorm:"size:5" json:"preferredEnd,omitempty"`

	// What was committed. May differ from the preferred window.
	ScheduledDate  *time.Time `json:"scheduledDate,omitempty"`
	ScheduledStart string     `gorm:"size:5" json:"scheduledStart,omitempty"`
	ScheduledEnd   string     `gorm:"size:5" json:"scheduledEnd,omitempty"`

	Status             AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	CancellationReason string            `gorm:"size:255" json:"cancellationReason,omitempty"`

	RescheduleHistory []RescheduleEntry `gorm:"serializer:json;type:json" json:"rescheduleHistory,omitempty"`
	Notes             []Note            `gorm:"serializer:json;type:json" json:"notes,omitempty"`
	Prescriptions     []FileRef         `gorm:"serializer:json;type:json" json:"prescriptions,omitempty"`
	Documents         []FileRef         `gorm:"serializer:json;type:json" json:"documents,omitempty"`

	FollowUpDate        *time.Time `json:"followUpDate,omitempty"`
	ConfirmationMessage string     `gorm:"type:text" json:"confirmationMessage,omitempty"`
	ConfirmationSentAt  *time.Time `json:"confirmationSentAt,omitempty"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`

	CreatedBy  string `gorm:"size:36" json:"createdBy,omitempty"`
	UpdatedBy  string `gorm:"size:36" json:"updatedBy,omitempty"`
	AssignedBy string `gorm:"size:36" json:"assignedBy,omitempty"`

	// Relations
	User   User  `gorm:"foreignKey:UserID" json:"-"`
	Doctor *User `gorm:"foreignKey:DoctorID" json:"-"`
}

// AppendNote adds an entry to the append-only notes log.
func (a *Appointment) AppendNote(author string, role ActorRole, content string, at time.Time) {
	a.Notes = append(a.Notes, Note{
		Author:    author,
		Role:      role,
		Content:   content,
		CreatedAt: at,
	})
}

// AppendReschedule adds an entry to the append-only reschedule history.
func (a *Appointment) AppendReschedule(entry RescheduleEntry) {
	a.RescheduleHistory = append(a.RescheduleHistory, entry)
}
