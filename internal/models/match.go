package models

import "time"

// Like is a one-directional match request. A unique index on the pair keeps
// duplicate requests out at the data layer.
type Like struct {
	BaseModel
	FromUserID string     `gorm:"type:uuid;not null;index:idx_like_pair,unique"`
	ToUserID   string     `gorm:"type:uuid;not null;index:idx_like_pair,unique"`
	Status     LikeStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	DecidedAt  *time.Time
}

// Match is created when a like is accepted and anchors the dialog.
type Match struct {
	BaseModel
	UserAID string `gorm:"type:uuid;not null;index:idx_match_pair,unique"`
	UserBID string `gorm:"type:uuid;not null;index:idx_match_pair,unique"`
}

// Partner returns the other participant of the match.
func (m *Match) Partner(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

func (m *Match) HasParticipant(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}
