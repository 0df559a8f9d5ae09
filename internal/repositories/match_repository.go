package repositories

import (
	"errors"
	"time"

	"hanabi_backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrLikeNotFound       = errors.New("like not found")
	ErrLikeAlreadyExists  = errors.New("like already exists")
	ErrLikeAlreadyDecided = errors.New("like already decided")
	ErrMatchNotFound      = errors.New("match not found")
)

const pqUniqueViolation = "23505"

type MatchRepository interface {
	CreateLike(like *models.Like) error
	FindLikeByID(id string) (*models.Like, error)
	FindPendingLikesTo(userID string) ([]models.Like, error)
	FindLikedUserIDs(fromUserID string) ([]string, error)
	DecideLike(id string, status models.LikeStatus) (*models.Like, error)

	CreateMatch(match *models.Match) error
	FindMatchByID(id string) (*models.Match, error)
	FindMatchesByUser(userID string) ([]models.Match, error)
	FindMatchBetween(userA, userB string) (*models.Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateLike(like *models.Like) error {
	err := r.db.Create(like).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrLikeAlreadyExists
		}
		return err
	}
	return nil
}

func (r *matchRepository) FindLikeByID(id string) (*models.Like, error) {
	var like models.Like
	err := r.db.First(&like, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLikeNotFound
		}
		return nil, err
	}
	return &like, nil
}

func (r *matchRepository) FindPendingLikesTo(userID string) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.
		Where("to_user_id = ? AND status = ?", userID, models.LikeStatusPending).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

func (r *matchRepository) FindLikedUserIDs(fromUserID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Like{}).
		Where("from_user_id = ?", fromUserID).
		Pluck("to_user_id", &ids).Error
	return ids, err
}

func (r *matchRepository) DecideLike(id string, status models.LikeStatus) (*models.Like, error) {
	now := time.Now()
	res := r.db.Model(&models.Like{}).
		Where("id = ? AND status = ?", id, models.LikeStatusPending).
		Updates(map[string]interface{}{"status": status, "decided_at": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a vanished like from one another decision beat us to.
		var count int64
		if err := r.db.Model(&models.Like{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrLikeNotFound
		}
		return nil, ErrLikeAlreadyDecided
	}
	return r.FindLikeByID(id)
}

func (r *matchRepository) CreateMatch(match *models.Match) error {
	return r.db.Create(match).Error
}

func (r *matchRepository) FindMatchByID(id string) (*models.Match, error) {
	var match models.Match
	err := r.db.First(&match, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) FindMatchesByUser(userID string) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

func (r *matchRepository) FindMatchBetween(userA, userB string) (*models.Match, error) {
	var match models.Match
	err := r.db.
		Where("(user_a_id = ? AND user_b_id = ?) OR (user_a_id = ? AND user_b_id = ?)",
			userA, userB, userB, userA).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}
