package dto

import "time"

type SendMessageRequest struct {
	Content   string `json:"content" validate:"required,max=2000"`
	Translate bool   `json:"translate"`
}

type MessageResponse struct {
	ID                string     `json:"id"`
	MatchID           string     `json:"match_id"`
	SenderID          string     `json:"sender_id"`
	Content           string     `json:"content"`
	TranslatedContent string     `json:"translated_content,omitempty"`
	IsRead            bool       `json:"is_read"`
	ReadAt            *time.Time `json:"read_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Total    int                `json:"total"`
}
