package dto

import "io"

// The wizard holds its working copy on the client; every request below is
// one step's write-through (or the terminal commit of buffered fields).

type NationalityRequest struct {
	Nationality string `json:"nationality" validate:"required,is-nationality"`
}

type BasicInfoRequest struct {
	Nickname  string `json:"nickname" validate:"required,min=1,max=50"`
	Gender    string `json:"gender" validate:"required,is-gender"`
	Birthdate string `json:"birthdate" validate:"required"` // YYYY-MM-DD
	City      string `json:"city" validate:"required,max=100"`
}

type LanguageSkillInput struct {
	Language string `json:"language" validate:"required,oneof=ko ja"`
	Level    string `json:"level" validate:"required,is-lang-level"`
}

type ProfileDetailsRequest struct {
	Job            string               `json:"job" validate:"max=100"`
	Education      string               `json:"education" validate:"required,is-education"`
	Bio            string               `json:"bio" validate:"required,max=500"`
	Interests      []string             `json:"interests" validate:"max=10,dive,min=1,max=50"`
	LanguageSkills []LanguageSkillInput `json:"language_skills" validate:"required,len=2,dive"`
}

// FileInput carries one uploaded file from the handler into a service.
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type SubmitVerificationInput struct {
	DocType  string `json:"doc_type" validate:"required,is-doc-type"`
	Document FileInput
}

type StepBackRequest struct {
	Step int `json:"step" validate:"required,min=1,max=5"`
}

type OnboardingStateResponse struct {
	Step        int    `json:"step"`
	Completed   bool   `json:"completed"`
	Nationality string `json:"nationality,omitempty"`
	PhotoCount  int    `json:"photo_count"`
	HasPending  bool   `json:"has_pending_verification"`
}
