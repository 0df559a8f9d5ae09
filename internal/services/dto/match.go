package dto

import (
	"time"

	"hanabi_backend/internal/models"
)

type LikeRequest struct {
	ToUserID string `json:"to_user_id" validate:"required,uuid"`
}

type LikeResponse struct {
	ID         string             `json:"id"`
	FromUserID string             `json:"from_user_id"`
	ToUserID   string             `json:"to_user_id"`
	Status     models.LikeStatus  `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	From       *CandidateResponse `json:"from,omitempty"`
}

type MatchResponse struct {
	ID          string             `json:"id"`
	Partner     *CandidateResponse `json:"partner"`
	LastMessage *MessageResponse   `json:"last_message,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}
