package models

import (
	"time"
)

// BreakSlot is a sub-interval inside an availability slot during which the
// doctor does not take patients.
type BreakSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilitySlot is a doctor's declared open interval on a specific
// calendar date. Times are zero-padded "HH:MM" wall-clock strings. Slots are
// independent entries; they are not required to be sorted or non-overlapping.
type AvailabilitySlot struct {
	Date        time.Time   `json:"date"`
	StartTime   string      `json:"startTime"`
	EndTime     string      `json:"endTime"`
	BreakSlots  []BreakSlot `json:"breakSlots,omitempty"`
	MaxPatients int         `json:"maxPatients"`
	IsClosed    bool        `json:"isClosed"`
}

// DoctorProfile holds a doctor's public details and availability calendar.
// Owned 1:1 by a doctor account.
type DoctorProfile struct {
	BaseModel
	UserID            string             `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Specialization    string             `gorm:"size:120;not null" json:"specialization"`
	Experience        int                `gorm:"default:0" json:"experience"`
	Education         string             `gorm:"size:255" json:"education"`
	Description       string             `gorm:"type:text" json:"description"`
	PhotoURL          string             `gorm:"size:512" json:"photoUrl,omitempty"`
	ConsultationFee   float64            `json:"consultationFee,omitempty"`
	Availability      []AvailabilitySlot `gorm:"serializer:json;type:json" json:"availability"`
	EmergencyHolidays []time.Time        `gorm:"serializer:json;type:json" json:"emergencyHolidays,omitempty"`
	RatingAverage     float64            `gorm:"default:0" json:"ratingAverage"`
	RatingCount       int                `gorm:"default:0" json:"ratingCount"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
