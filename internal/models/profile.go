package models

// ProfilePhoto references a stored artifact; bytes live in storage only.
type ProfilePhoto struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;index"`
	Path      string `gorm:"not null"`
	SortOrder int    `gorm:"default:0"`
	IsPrimary bool   `gorm:"default:false"`
}

// Interest rows come from the closed per-nationality vocabulary and are
// inserted independently of the age-gated basic-info step.
type Interest struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;index:idx_interest_user_name,unique"`
	Name   string `gorm:"type:varchar(50);not null;index:idx_interest_user_name,unique"`
}

type LanguageSkill struct {
	BaseModel
	UserID   string        `gorm:"type:uuid;not null;index:idx_lang_user,unique"`
	Language string        `gorm:"type:varchar(2);not null;index:idx_lang_user,unique"` // "ko" or "ja"
	Level    LanguageLevel `gorm:"type:varchar(20);not null"`
}

// Profile holds the post-onboarding free-form fields.
type Profile struct {
	BaseModel
	UserID    string         `gorm:"type:uuid;not null;uniqueIndex"`
	Job       string         `gorm:"type:varchar(100)"`
	Education EducationLevel `gorm:"type:varchar(20)"`
}
