package models

import "time"

type Message struct {
	BaseModel
	MatchID  string `gorm:"type:uuid;not null;index"`
	SenderID string `gorm:"type:uuid;not null;index"`
	Content  string `gorm:"type:text;not null"`

	// Filled by the translation stub; empty when translation is off.
	TranslatedContent string `gorm:"type:text"`

	IsRead bool `gorm:"default:false"`
	ReadAt *time.Time
}
