package repositories

import (
	"errors"
	"time"

	"hanabi_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrVerificationNotFound = errors.New("verification not found")
	// ErrAlreadyDecided means the row exists but a decision already landed;
	// a concurrent second decision must be a no-op error, not an overwrite.
	ErrAlreadyDecided = errors.New("verification already decided")
)

// VerificationRepository is the submission store: identity-document
// submissions plus the generic photo/bio review envelopes.
type VerificationRepository interface {
	// identity submissions
	CreateIdentity(iv *models.IdentityVerification) error
	FindIdentityByID(id string) (*models.IdentityVerification, error)
	FindLatestIdentityByUserID(userID string) (*models.IdentityVerification, error)
	HasOutstandingIdentity(userID string) (bool, error)
	ListPendingIdentity(limit, offset int) ([]models.IdentityVerification, error)
	DecideIdentity(id, adminID string, status models.VerificationStatus, reason string) (*models.IdentityVerification, error)

	// photo / bio review envelopes
	CreateRequest(vr *models.VerificationRequest) error
	FindRequestByID(id string) (*models.VerificationRequest, error)
	FindPendingRequestByUser(userID string, reqType models.RequestType) (*models.VerificationRequest, error)
	ListPendingRequests(reqType models.RequestType, limit, offset int) ([]models.VerificationRequest, error)
	DecideRequest(id, adminID string, status models.RequestStatus, reason string) (*models.VerificationRequest, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

// ---------------- identity submissions ----------------

func (r *verificationRepository) CreateIdentity(iv *models.IdentityVerification) error {
	return r.db.Create(iv).Error
}

func (r *verificationRepository) FindIdentityByID(id string) (*models.IdentityVerification, error) {
	var iv models.IdentityVerification
	err := r.db.Preload("User").First(&iv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &iv, nil
}

func (r *verificationRepository) FindLatestIdentityByUserID(userID string) (*models.IdentityVerification, error) {
	var iv models.IdentityVerification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&iv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &iv, nil
}

func (r *verificationRepository) HasOutstandingIdentity(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.IdentityVerification{}).
		Where("user_id = ? AND status = ?", userID, models.VerificationStatusSubmitted).
		Count(&count).Error
	return count > 0, err
}

func (r *verificationRepository) ListPendingIdentity(limit, offset int) ([]models.IdentityVerification, error) {
	var subs []models.IdentityVerification
	err := r.db.
		Preload("User").
		Where("status = ?", models.VerificationStatusSubmitted).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&subs).Error
	return subs, err
}

// DecideIdentity transitions submitted -> approved/rejected and flips the
// owning user's is_verified in the same transaction. The status guard makes
// a decision on an already-decided row affect zero rows.
func (r *verificationRepository) DecideIdentity(id, adminID string, status models.VerificationStatus, reason string) (*models.IdentityVerification, error) {
	now := time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.IdentityVerification{}).
			Where("id = ? AND status = ?", id, models.VerificationStatusSubmitted).
			Updates(map[string]interface{}{
				"status":           status,
				"rejection_reason": reason,
				"reviewed_by":      adminID,
				"reviewed_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.IdentityVerification{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrVerificationNotFound
			}
			return ErrAlreadyDecided
		}

		var userID string
		if err := tx.Model(&models.IdentityVerification{}).
			Where("id = ?", id).
			Pluck("user_id", &userID).Error; err != nil {
			return err
		}

		verified := status == models.VerificationStatusApproved
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("is_verified", verified).Error
	})
	if err != nil {
		return nil, err
	}

	return r.FindIdentityByID(id)
}

// ---------------- photo / bio review envelopes ----------------

func (r *verificationRepository) CreateRequest(vr *models.VerificationRequest) error {
	return r.db.Create(vr).Error
}

func (r *verificationRepository) FindRequestByID(id string) (*models.VerificationRequest, error) {
	var vr models.VerificationRequest
	err := r.db.Preload("User").First(&vr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &vr, nil
}

func (r *verificationRepository) FindPendingRequestByUser(userID string, reqType models.RequestType) (*models.VerificationRequest, error) {
	var vr models.VerificationRequest
	err := r.db.
		Where("user_id = ? AND type = ? AND status = ?", userID, reqType, models.RequestStatusPending).
		Order("created_at DESC").
		First(&vr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &vr, nil
}

func (r *verificationRepository) ListPendingRequests(reqType models.RequestType, limit, offset int) ([]models.VerificationRequest, error) {
	var reqs []models.VerificationRequest
	err := r.db.
		Preload("User").
		Where("type = ? AND status = ?", reqType, models.RequestStatusPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&reqs).Error
	return reqs, err
}

func (r *verificationRepository) DecideRequest(id, adminID string, status models.RequestStatus, reason string) (*models.VerificationRequest, error) {
	now := time.Now()

	res := r.db.Model(&models.VerificationRequest{}).
		Where("id = ? AND status = ?", id, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": reason,
			"reviewed_by":      adminID,
			"reviewed_at":      now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.VerificationRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrVerificationNotFound
		}
		return nil, ErrAlreadyDecided
	}

	return r.FindRequestByID(id)
}
