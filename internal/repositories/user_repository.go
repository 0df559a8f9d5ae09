package repositories

import (
	"errors"

	"hanabi_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateFields(userID string, fields map[string]interface{}) error
	SetOnboardingStep(userID string, step int) error
	Delete(userID string) error

	FindByNationality(nationality models.Nationality, excludeIDs []string, limit, offset int) ([]models.User, error)
	CountAll() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Photos").
		Preload("Interests").
		Preload("LanguageSkills").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateFields writes a partial update in one statement; the terminal
// onboarding step funnels all buffered fields through here.
func (r *userRepository) UpdateFields(userID string, fields map[string]interface{}) error {
	res := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetOnboardingStep(userID string, step int) error {
	return r.UpdateFields(userID, map[string]interface{}{"onboarding_step": step})
}

// Delete removes the user; owned rows cascade at the database level.
func (r *userRepository) Delete(userID string) error {
	res := r.db.Delete(&models.User{}, "id = ?", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) FindByNationality(nationality models.Nationality, excludeIDs []string, limit, offset int) ([]models.User, error) {
	var users []models.User
	q := r.db.
		Preload("Photos").
		Where("nationality = ? AND onboarding_completed = ?", nationality, true)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *userRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
