package models

import (
	"time"

	"gorm.io/datatypes"
)

// IdentityVerification is one durable submission of a government-ID photo.
// The applicant never mutates it after submission; a new attempt after a
// rejection is a new record.
type IdentityVerification struct {
	BaseModel
	UserID       string             `gorm:"type:uuid;not null;index"`
	DocType      DocumentType       `gorm:"type:varchar(30);not null"`
	CountryCode  Nationality        `gorm:"type:varchar(2);not null"`
	ArtifactPath string             `gorm:"not null"` // storage path, never embedded bytes
	Status       VerificationStatus `gorm:"type:varchar(20);not null;default:'submitted';index"`

	// Required iff Status == rejected.
	RejectionReason string

	ReviewedBy *string `gorm:"type:uuid"`
	ReviewedAt *time.Time

	User *User `gorm:"foreignKey:UserID"`
}

// VerificationRequest is the lower-stakes review envelope for profile-photo
// and bio changes. The proposed content rides in Payload and is applied to
// the user only on approval.
type VerificationRequest struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index"`
	Type    RequestType    `gorm:"type:varchar(20);not null;index"`
	Payload datatypes.JSON `gorm:"type:jsonb"` // {"photo_path": ...} or {"bio": ...}
	Status  RequestStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`

	RejectionReason string

	ReviewedBy *string `gorm:"type:uuid"`
	ReviewedAt *time.Time

	User *User `gorm:"foreignKey:UserID"`
}
