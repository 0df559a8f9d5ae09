package dto

import (
	"time"

	"hanabi_backend/internal/models"
)

// UserResponse is the safe projection of a user for API responses.
type UserResponse struct {
	ID                  string                `json:"id"`
	Email               string                `json:"email,omitempty"`
	Nickname            string                `json:"nickname"`
	Gender              models.Gender         `json:"gender,omitempty"`
	Birthdate           *time.Time            `json:"birthdate,omitempty"`
	City                string                `json:"city,omitempty"`
	Nationality         models.Nationality    `json:"nationality,omitempty"`
	Bio                 string                `json:"bio,omitempty"`
	Job                 string                `json:"job,omitempty"`
	Education           models.EducationLevel `json:"education,omitempty"`
	IsVerified          bool                  `json:"is_verified"`
	OnboardingCompleted bool                  `json:"onboarding_completed"`
	OnboardingStep      int                   `json:"onboarding_step"`
	Photos              []PhotoResponse       `json:"photos,omitempty"`
	Interests           []string              `json:"interests,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
}

type PhotoResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
	IsPrimary bool   `json:"is_primary"`
}

type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"required,max=500"`
}

type CandidateResponse struct {
	ID          string             `json:"id"`
	Nickname    string             `json:"nickname"`
	City        string             `json:"city"`
	Nationality models.Nationality `json:"nationality"`
	Bio         string             `json:"bio"`
	IsVerified  bool               `json:"is_verified"`
	Photos      []PhotoResponse    `json:"photos,omitempty"`
}
