package repositories

import (
	"errors"

	"hanabi_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	// photos
	AddPhoto(photo *models.ProfilePhoto) error
	AddPhotos(photos []models.ProfilePhoto) error
	FindPhotosByUser(userID string) ([]models.ProfilePhoto, error)
	SetPrimaryPhoto(userID, photoID string) error
	DeletePhoto(userID, photoID string) error
	CountPhotos(userID string) (int64, error)

	// interests / language skills
	ReplaceInterests(userID string, names []string) error
	ReplaceLanguageSkills(userID string, skills []models.LanguageSkill) error

	// free-form profile fields
	UpsertProfile(profile *models.Profile) error
	FindProfileByUser(userID string) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) AddPhoto(photo *models.ProfilePhoto) error {
	return r.db.Create(photo).Error
}

func (r *profileRepository) AddPhotos(photos []models.ProfilePhoto) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.Create(&photos).Error
}

func (r *profileRepository) FindPhotosByUser(userID string) ([]models.ProfilePhoto, error) {
	var photos []models.ProfilePhoto
	err := r.db.Where("user_id = ?", userID).Order("sort_order ASC").Find(&photos).Error
	return photos, err
}

func (r *profileRepository) SetPrimaryPhoto(userID, photoID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProfilePhoto{}).
			Where("user_id = ?", userID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		res := tx.Model(&models.ProfilePhoto{}).
			Where("id = ? AND user_id = ?", photoID, userID).
			Update("is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProfileNotFound
		}
		return nil
	})
}

func (r *profileRepository) DeletePhoto(userID, photoID string) error {
	res := r.db.Delete(&models.ProfilePhoto{}, "id = ? AND user_id = ?", photoID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) CountPhotos(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProfilePhoto{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ReplaceInterests swaps the full interest set; the wizard always submits
// the complete selection.
func (r *profileRepository) ReplaceInterests(userID string, names []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Interest{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if len(names) == 0 {
			return nil
		}
		interests := make([]models.Interest, 0, len(names))
		for _, name := range names {
			interests = append(interests, models.Interest{UserID: userID, Name: name})
		}
		return tx.Create(&interests).Error
	})
}

func (r *profileRepository) ReplaceLanguageSkills(userID string, skills []models.LanguageSkill) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.LanguageSkill{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if len(skills) == 0 {
			return nil
		}
		for i := range skills {
			skills[i].UserID = userID
		}
		return tx.Create(&skills).Error
	})
}

func (r *profileRepository) UpsertProfile(profile *models.Profile) error {
	var existing models.Profile
	err := r.db.First(&existing, "user_id = ?", profile.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(profile).Error
	}
	if err != nil {
		return err
	}
	profile.ID = existing.ID
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"job":       profile.Job,
		"education": profile.Education,
	}).Error
}

func (r *profileRepository) FindProfileByUser(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
