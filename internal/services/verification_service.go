package services

import (
	"context"
	"encoding/json"
	"strings"

	"hanabi_backend/internal/config"
	"hanabi_backend/internal/logger"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/internal/storage"
	"hanabi_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// VerificationService is the applicant side of the moderation pipeline:
// identity submission (initial and resubmission after rejection) and the
// pending change requests for profile photos and bio edits.
type VerificationService interface {
	GetState(userID string) (*dto.VerificationStateResponse, error)

	// SubmitIdentity uploads the document artifact and records a submitted
	// identity verification. Refused while an earlier submission is still
	// undecided; allowed again after a rejection.
	SubmitIdentity(ctx context.Context, userID string, input *dto.SubmitVerificationInput) (*dto.IdentityVerificationResponse, error)

	RequestBioUpdate(userID, bio string) (*dto.VerificationRequestResponse, error)
	RequestProfilePhoto(ctx context.Context, userID string, file dto.FileInput) (*dto.VerificationRequestResponse, error)
}

type verificationService struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	fileStorage      storage.Storage
	uploadCfg        config.UploadConfig
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	fileStorage storage.Storage,
	uploadCfg config.UploadConfig,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		fileStorage:      fileStorage,
		uploadCfg:        uploadCfg,
	}
}

func (s *verificationService) GetState(userID string) (*dto.VerificationStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.VerificationStateResponse{
		Status:     "none",
		IsVerified: user.IsVerified,
	}

	latest, err := s.verificationRepo.FindLatestIdentityByUserID(userID)
	if err != nil {
		if err == repositories.ErrVerificationNotFound {
			return resp, nil
		}
		return nil, err
	}

	resp.Status = string(latest.Status)
	if latest.Status == models.VerificationStatusRejected {
		resp.Reason = latest.RejectionReason
	}
	return resp, nil
}

func (s *verificationService) SubmitIdentity(ctx context.Context, userID string, input *dto.SubmitVerificationInput) (*dto.IdentityVerificationResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Nationality == "" {
		return nil, apperrors.NewBadRequestError("Nationality must be chosen first")
	}

	docType := models.DocumentType(input.DocType)
	if !user.Nationality.AllowsDocumentType(docType) {
		return nil, apperrors.InvalidDocumentType()
	}
	if err := validateUpload(input.Document, s.uploadCfg); err != nil {
		return nil, err
	}

	outstanding, err := s.verificationRepo.HasOutstandingIdentity(userID)
	if err != nil {
		return nil, err
	}
	if outstanding {
		return nil, apperrors.VerificationOutstanding()
	}

	artifactPath := storage.DocumentPath(userID, input.Document.Filename)
	if err := s.fileStorage.Save(ctx, artifactPath, input.Document.Reader, input.Document.ContentType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "upload", "Failed to store document", 502)
	}

	iv := &models.IdentityVerification{
		UserID:       userID,
		DocType:      docType,
		CountryCode:  user.Nationality,
		ArtifactPath: artifactPath,
		Status:       models.VerificationStatusSubmitted,
	}
	if err := s.verificationRepo.CreateIdentity(iv); err != nil {
		// The uploaded document has no owning row now. It is invisible to
		// admins and applicants, so a retry simply uploads a fresh artifact.
		logger.WithError(err).Warn("identity row not written, artifact orphaned", "user_id", userID, "path", artifactPath)
		return nil, err
	}

	return &dto.IdentityVerificationResponse{
		ID:          iv.ID,
		UserID:      iv.UserID,
		DocType:     iv.DocType,
		CountryCode: iv.CountryCode,
		Status:      iv.Status,
		SubmittedAt: iv.CreatedAt,
	}, nil
}

func (s *verificationService) RequestBioUpdate(userID, bio string) (*dto.VerificationRequestResponse, error) {
	if bio == "" {
		return nil, apperrors.ValidationError(map[string]string{"bio": "must not be empty"})
	}

	if err := s.requireNoPendingRequest(userID, models.RequestTypeBioUpdate); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(requestPayload{Bio: bio})
	if err != nil {
		return nil, err
	}

	vr := &models.VerificationRequest{
		UserID:  userID,
		Type:    models.RequestTypeBioUpdate,
		Payload: datatypes.JSON(payload),
		Status:  models.RequestStatusPending,
	}
	if err := s.verificationRepo.CreateRequest(vr); err != nil {
		return nil, err
	}

	return &dto.VerificationRequestResponse{
		ID:          vr.ID,
		UserID:      vr.UserID,
		Type:        vr.Type,
		Status:      vr.Status,
		ProposedBio: bio,
		CreatedAt:   vr.CreatedAt,
	}, nil
}

func (s *verificationService) RequestProfilePhoto(ctx context.Context, userID string, file dto.FileInput) (*dto.VerificationRequestResponse, error) {
	if err := validateUpload(file, s.uploadCfg); err != nil {
		return nil, err
	}
	if err := s.requireNoPendingRequest(userID, models.RequestTypeProfilePhoto); err != nil {
		return nil, err
	}

	path := storage.PhotoPath(userID, file.Filename)
	if err := s.fileStorage.Save(ctx, path, file.Reader, file.ContentType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "upload", "Failed to store photo", 502)
	}

	payload, err := json.Marshal(requestPayload{PhotoPath: path})
	if err != nil {
		return nil, err
	}

	vr := &models.VerificationRequest{
		UserID:  userID,
		Type:    models.RequestTypeProfilePhoto,
		Payload: datatypes.JSON(payload),
		Status:  models.RequestStatusPending,
	}
	if err := s.verificationRepo.CreateRequest(vr); err != nil {
		logger.WithError(err).Warn("request row not written, artifact orphaned", "user_id", userID, "path", path)
		return nil, err
	}

	return &dto.VerificationRequestResponse{
		ID:        vr.ID,
		UserID:    vr.UserID,
		Type:      vr.Type,
		Status:    vr.Status,
		CreatedAt: vr.CreatedAt,
	}, nil
}

func (s *verificationService) requireNoPendingRequest(userID string, reqType models.RequestType) error {
	pending, err := s.verificationRepo.FindPendingRequestByUser(userID, reqType)
	if err != nil && err != repositories.ErrVerificationNotFound {
		return err
	}
	if pending != nil {
		return apperrors.NewConflictError("verification", "A change request of this type is already under review")
	}
	return nil
}

func validateUpload(file dto.FileInput, cfg config.UploadConfig) error {
	if !isAllowedContentType(file.ContentType, cfg.AllowedTypes) {
		return apperrors.UnsupportedFileType(file.ContentType)
	}
	if file.Size > cfg.MaxSize {
		return apperrors.FileTooLarge(cfg.MaxSize)
	}
	return nil
}

func isAllowedContentType(contentType string, allowed []string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	for _, t := range allowed {
		if contentType == t {
			return true
		}
	}
	return false
}
