package models

// EmergencyContact is a person to reach when a patient cannot be.
type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// UserProfile holds medical background for a user-role account.
// Owned 1:1 by the account.
type UserProfile struct {
	BaseModel
	UserID           string            `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Age              int               `json:"age,omitempty"`
	Gender           string            `gorm:"size:10" json:"gender,omitempty"`
	DiseaseType      string            `gorm:"size:120" json:"diseaseType,omitempty"`
	Symptoms         string            `gorm:"type:text" json:"symptoms,omitempty"`
	MedicalHistory   string            `gorm:"type:text" json:"medicalHistory,omitempty"`
	EmergencyContact *EmergencyContact `gorm:"serializer:json;type:json" json:"emergencyContact,omitempty"`
	MedicalReports   []FileRef         `gorm:"serializer:json;type:json" json:"medicalReports,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
