package repositories

import (
	"errors"

	"hanabi_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type ChatRepository interface {
	CreateMessage(message *models.Message) error
	FindMessages(matchID string, limit, offset int) ([]models.Message, error)
	MarkMessagesRead(matchID, readerID string) error
	GetUnreadCount(matchID, readerID string) (int64, error)
	FindLastMessage(matchID string) (*models.Message, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *chatRepository) FindMessages(matchID string, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	return messages, err
}

// MarkMessagesRead marks everything the reader did not send.
func (r *chatRepository) MarkMessagesRead(matchID, readerID string) error {
	return r.db.Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND is_read = ?", matchID, readerID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": gorm.Expr("now()")}).Error
}

func (r *chatRepository) GetUnreadCount(matchID, readerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND is_read = ?", matchID, readerID, false).
		Count(&count).Error
	return count, err
}

func (r *chatRepository) FindLastMessage(matchID string) (*models.Message, error) {
	var message models.Message
	err := r.db.
		Where("match_id = ?", matchID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}
