package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

// Closed enum: notifications are created only as side effects of state
// transitions, never directly by a user action.
const (
	NotificationMatchAccepted        NotificationType = "match_accepted"
	NotificationMatchRejected        NotificationType = "match_rejected"
	NotificationMatchRequest         NotificationType = "match_request"
	NotificationNewMessage           NotificationType = "new_message"
	NotificationVerifyPassed         NotificationType = "verify_passed"
	NotificationVerifyRejected       NotificationType = "verify_rejected"
	NotificationProfilePhotoApproved NotificationType = "profile_photo_approved"
	NotificationProfilePhotoRejected NotificationType = "profile_photo_rejected"
	NotificationProfilePhotoRequest  NotificationType = "profile_photo_request"
)

func IsValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationMatchAccepted, NotificationMatchRejected, NotificationMatchRequest,
		NotificationNewMessage, NotificationVerifyPassed, NotificationVerifyRejected,
		NotificationProfilePhotoApproved, NotificationProfilePhotoRejected,
		NotificationProfilePhotoRequest:
		return true
	}
	return false
}

type Notification struct {
	BaseModel
	UserID    string           `gorm:"type:uuid;not null;index"`
	Type      NotificationType `gorm:"type:varchar(40);not null"`
	Title     string           `gorm:"not null"`
	Message   string
	RelatedID string         `gorm:"type:uuid"` // optional decided-request / match / message id
	Data      datatypes.JSON `gorm:"type:jsonb"`
	IsRead    bool           `gorm:"default:false"`
	ReadAt    *time.Time
}
