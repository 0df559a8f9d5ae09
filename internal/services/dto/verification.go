package dto

import (
	"time"

	"hanabi_backend/internal/models"
)

type IdentityVerificationResponse struct {
	ID              string                    `json:"id"`
	UserID          string                    `json:"user_id"`
	DocType         models.DocumentType       `json:"doc_type"`
	CountryCode     models.Nationality        `json:"country_code"`
	Status          models.VerificationStatus `json:"status"`
	RejectionReason string                    `json:"rejection_reason,omitempty"`
	DocumentURL     string                    `json:"document_url,omitempty"` // signed, admin view only
	SubmittedAt     time.Time                 `json:"submitted_at"`
	ReviewedAt      *time.Time                `json:"reviewed_at,omitempty"`
	Nickname        string                    `json:"nickname,omitempty"`
}

type VerificationRequestResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	Type            models.RequestType   `json:"type"`
	Status          models.RequestStatus `json:"status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	PhotoURL        string               `json:"photo_url,omitempty"`
	ProposedBio     string               `json:"proposed_bio,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	Nickname        string               `json:"nickname,omitempty"`
}

// PendingReviewGroup bundles one user's outstanding submissions so an
// admin can act on several photos from the same applicant at once.
type PendingReviewGroup struct {
	UserID   string                         `json:"user_id"`
	Nickname string                         `json:"nickname"`
	Identity []IdentityVerificationResponse `json:"identity,omitempty"`
	Requests []VerificationRequestResponse  `json:"requests,omitempty"`
}

type PendingReviewResponse struct {
	Identity      []IdentityVerificationResponse `json:"identity"`
	ProfilePhotos []VerificationRequestResponse  `json:"profile_photos"`
	BioUpdates    []VerificationRequestResponse  `json:"bio_updates"`
	ByUser        []PendingReviewGroup           `json:"by_user"`
}

type RejectDecisionRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

type VerificationStateResponse struct {
	Status     string `json:"status"` // none | submitted | approved | rejected
	IsVerified bool   `json:"is_verified"`
	Reason     string `json:"reason,omitempty"`
}
