package models

import "time"

type User struct {
	BaseModel
	Email        string      `gorm:"uniqueIndex;not null"`
	PasswordHash string      `gorm:"not null"`
	Role         UserRole    `gorm:"type:varchar(20);not null;default:'user'"`
	Nickname     string      `gorm:"type:varchar(50)"`
	Gender       Gender      `gorm:"type:varchar(10)"`
	Birthdate    *time.Time  `gorm:"type:date"`
	City         string      `gorm:"type:varchar(100)"`
	Nationality  Nationality `gorm:"type:varchar(2)"`
	Bio          string      `gorm:"type:text"`

	// Flips only as a side effect of an identity-verification decision.
	IsVerified bool `gorm:"default:false"`

	OnboardingCompleted bool `gorm:"default:false"`
	OnboardingStep      int  `gorm:"default:1"`

	// Relations
	Photos                []ProfilePhoto         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Interests             []Interest             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	LanguageSkills        []LanguageSkill        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	IdentityVerifications []IdentityVerification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Notifications         []Notification         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Age computes full years at the reference time.
func (u *User) Age(at time.Time) int {
	if u.Birthdate == nil {
		return 0
	}
	return AgeAt(*u.Birthdate, at)
}

// AgeAt is the shared calendar-age computation used by the onboarding gate.
func AgeAt(birthdate, at time.Time) int {
	age := at.Year() - birthdate.Year()
	if at.Month() < birthdate.Month() ||
		(at.Month() == birthdate.Month() && at.Day() < birthdate.Day()) {
		age--
	}
	return age
}
