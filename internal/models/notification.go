package models

import (
	"time"
)

// NotificationType represents what a notification is about
type NotificationType string

const (
	NotificationAppointment  NotificationType = "appointment"
	NotificationAvailability NotificationType = "availability"
	NotificationSystem       NotificationType = "system"
)

// NotificationChannel represents the delivery channel of a notification.
// Only in-app records are produced by this server; external delivery is a
// separate subsystem.
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
	ChannelInApp    NotificationChannel = "in-app"
)

// NotificationMeta is the structured payload attached to a notification,
// keyed by the notification type.
type NotificationMeta struct {
	AppointmentID string     `json:"appointmentId,omitempty"`
	DoctorID      string     `json:"doctorId,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	StartTime     string     `json:"startTime,omitempty"`
}

// Notification is an in-app message for a single recipient.
type Notification struct {
	BaseModel
	RecipientID   string              `gorm:"size:36;index;not null" json:"recipientId"`
	Type          NotificationType    `gorm:"size:20;default:'system'" json:"type"`
	Title         string              `gorm:"size:255;not null" json:"title"`
	Message       string              `gorm:"type:text;not null" json:"message"`
	Metadata      *NotificationMeta   `gorm:"serializer:json;type:json" json:"metadata,omitempty"`
	IsRead        bool                `gorm:"default:false" json:"isRead"`
	Channel       NotificationChannel `gorm:"size:20;default:'in-app'" json:"channel"`
	TriggerSource ActorRole           `gorm:"size:20" json:"triggerSource,omitempty"`

	// Relations
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
