package services

import (
	"context"
	"time"

	"hanabi_backend/internal/config"
	"hanabi_backend/internal/logger"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/internal/storage"
	"hanabi_backend/pkg/apperrors"
)

// Onboarding wizard steps. Each completed step advances the persisted
// cursor; back-navigation only moves the cursor, never erases data.
const (
	StepNationality    = 1
	StepPhotos         = 2
	StepBasicInfo      = 3
	StepProfileDetails = 4
	StepVerification   = 5
)

type OnboardingService interface {
	GetState(userID string) (*dto.OnboardingStateResponse, error)
	SetNationality(userID string, req *dto.NationalityRequest) (*dto.OnboardingStateResponse, error)
	UploadPhotos(ctx context.Context, userID string, files []dto.FileInput) (*dto.OnboardingStateResponse, error)
	SetBasicInfo(userID string, req *dto.BasicInfoRequest) (*dto.OnboardingStateResponse, error)
	SetProfileDetails(userID string, req *dto.ProfileDetailsRequest) (*dto.OnboardingStateResponse, error)
	SubmitVerification(ctx context.Context, userID string, input *dto.SubmitVerificationInput) (*dto.VerificationStateResponse, error)
	SkipVerification(userID string) (*dto.OnboardingStateResponse, error)
	StepBack(userID string, req *dto.StepBackRequest) (*dto.OnboardingStateResponse, error)
}

type onboardingService struct {
	userRepo            repositories.UserRepository
	profileRepo         repositories.ProfileRepository
	verificationRepo    repositories.VerificationRepository
	verificationService VerificationService
	fileStorage         storage.Storage
	uploadCfg           config.UploadConfig
}

func NewOnboardingService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	verificationRepo repositories.VerificationRepository,
	verificationService VerificationService,
	fileStorage storage.Storage,
	uploadCfg config.UploadConfig,
) OnboardingService {
	return &onboardingService{
		userRepo:            userRepo,
		profileRepo:         profileRepo,
		verificationRepo:    verificationRepo,
		verificationService: verificationService,
		fileStorage:         fileStorage,
		uploadCfg:           uploadCfg,
	}
}

func (s *onboardingService) GetState(userID string) (*dto.OnboardingStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return s.buildState(user)
}

// ---------------- step 1: nationality ----------------

func (s *onboardingService) SetNationality(userID string, req *dto.NationalityRequest) (*dto.OnboardingStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"nationality": models.Nationality(req.Nationality),
	}); err != nil {
		return nil, err
	}
	if err := s.advanceStep(user, StepPhotos); err != nil {
		return nil, err
	}

	return s.GetState(userID)
}

// ---------------- step 2: photos ----------------

func (s *onboardingService) UploadPhotos(ctx context.Context, userID string, files []dto.FileInput) (*dto.OnboardingStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.PhotosRequired(s.uploadCfg.MinPhotos)
	}

	// A file that is not an image is refused outright rather than being
	// silently dropped from the batch.
	for _, file := range files {
		if err := validateUpload(file, s.uploadCfg); err != nil {
			return nil, err
		}
	}

	existing, err := s.profileRepo.CountPhotos(userID)
	if err != nil {
		return nil, err
	}
	if int(existing)+len(files) > s.uploadCfg.MaxPhotos {
		return nil, apperrors.NewBadRequestError("Too many profile photos")
	}

	photos := make([]models.ProfilePhoto, 0, len(files))
	for i, file := range files {
		path := storage.PhotoPath(userID, file.Filename)
		if err := s.fileStorage.Save(ctx, path, file.Reader, file.ContentType); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "upload", "Failed to store photo", 502)
		}
		photos = append(photos, models.ProfilePhoto{
			UserID:    userID,
			Path:      path,
			SortOrder: int(existing) + i,
			IsPrimary: existing == 0 && i == 0,
		})
	}

	if err := s.profileRepo.AddPhotos(photos); err != nil {
		// The artifacts are already in storage; the rows are not. Leave the
		// orphans for a cleanup sweep rather than failing the cleanup inline.
		logger.WithError(err).Warn("photo rows not written, artifacts orphaned", "user_id", userID, "count", len(photos))
		return nil, err
	}

	if err := s.advanceStep(user, StepBasicInfo); err != nil {
		return nil, err
	}
	return s.GetState(userID)
}

// ---------------- step 3: basic info ----------------

func (s *onboardingService) SetBasicInfo(userID string, req *dto.BasicInfoRequest) (*dto.OnboardingStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Nationality == "" {
		return nil, apperrors.NewBadRequestError("Nationality must be chosen first")
	}

	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"birthdate": "must be YYYY-MM-DD"})
	}

	// The age gate runs before anything is written; a blocked applicant
	// leaves no partial basic-info row behind.
	minAge := user.Nationality.MinAge()
	if models.AgeAt(birthdate, time.Now()) < minAge {
		return nil, apperrors.AgeRestricted(minAge)
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"nickname":  req.Nickname,
		"gender":    models.Gender(req.Gender),
		"birthdate": birthdate,
		"city":      req.City,
	}); err != nil {
		return nil, err
	}
	if err := s.advanceStep(user, StepProfileDetails); err != nil {
		return nil, err
	}
	return s.GetState(userID)
}

// ---------------- step 4: profile details ----------------

func (s *onboardingService) SetProfileDetails(userID string, req *dto.ProfileDetailsRequest) (*dto.OnboardingStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	// During onboarding the bio writes straight through; post-onboarding
	// edits go through the review queue instead.
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"bio": req.Bio,
	}); err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpsertProfile(&models.Profile{
		UserID:    userID,
		Job:       req.Job,
		Education: models.EducationLevel(req.Education),
	}); err != nil {
		return nil, err
	}

	if err := s.profileRepo.ReplaceInterests(userID, req.Interests); err != nil {
		return nil, err
	}

	skills := make([]models.LanguageSkill, 0, len(req.LanguageSkills))
	for _, skill := range req.LanguageSkills {
		skills = append(skills, models.LanguageSkill{
			UserID:   userID,
			Language: skill.Language,
			Level:    models.LanguageLevel(skill.Level),
		})
	}
	if err := s.profileRepo.ReplaceLanguageSkills(userID, skills); err != nil {
		return nil, err
	}

	if err := s.advanceStep(user, StepVerification); err != nil {
		return nil, err
	}
	return s.GetState(userID)
}

// ---------------- step 5: verification submit / skip ----------------

func (s *onboardingService) SubmitVerification(ctx context.Context, userID string, input *dto.SubmitVerificationInput) (*dto.VerificationStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTerminalReady(user); err != nil {
		return nil, err
	}

	if _, err := s.verificationService.SubmitIdentity(ctx, userID, input); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"onboarding_completed": true,
		"onboarding_step":      StepVerification,
	}); err != nil {
		return nil, err
	}

	return &dto.VerificationStateResponse{
		Status:     string(models.VerificationStatusSubmitted),
		IsVerified: false,
	}, nil
}

// SkipVerification completes onboarding without an identity submission.
// Everything written on earlier steps stays; is_verified stays false and
// no IdentityVerification record is created.
func (s *onboardingService) SkipVerification(userID string) (*dto.OnboardingStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTerminalReady(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"onboarding_completed": true,
		"onboarding_step":      StepVerification,
	}); err != nil {
		return nil, err
	}
	return s.GetState(userID)
}

// ---------------- back-navigation ----------------

func (s *onboardingService) StepBack(userID string, req *dto.StepBackRequest) (*dto.OnboardingStateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.OnboardingCompleted {
		return nil, apperrors.NewBadRequestError("Onboarding already completed")
	}
	if req.Step >= user.OnboardingStep {
		return nil, apperrors.NewBadRequestError("Can only step back to an earlier step")
	}

	if err := s.userRepo.SetOnboardingStep(userID, req.Step); err != nil {
		return nil, err
	}
	return s.GetState(userID)
}

// ---------------- helpers ----------------

func (s *onboardingService) advanceStep(user *models.User, step int) error {
	if user.OnboardingStep >= step {
		return nil // re-submitting an earlier step never moves the cursor back
	}
	return s.userRepo.SetOnboardingStep(user.ID, step)
}

func (s *onboardingService) requireTerminalReady(user *models.User) error {
	if user.Nationality == "" || user.Birthdate == nil {
		return apperrors.NewBadRequestError("Earlier onboarding steps are incomplete")
	}
	count, err := s.profileRepo.CountPhotos(user.ID)
	if err != nil {
		return err
	}
	if int(count) < s.uploadCfg.MinPhotos {
		return apperrors.PhotosRequired(s.uploadCfg.MinPhotos)
	}
	return nil
}

func (s *onboardingService) buildState(user *models.User) (*dto.OnboardingStateResponse, error) {
	count, err := s.profileRepo.CountPhotos(user.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.verificationRepo.HasOutstandingIdentity(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.OnboardingStateResponse{
		Step:        user.OnboardingStep,
		Completed:   user.OnboardingCompleted,
		Nationality: string(user.Nationality),
		PhotoCount:  int(count),
		HasPending:  pending,
	}, nil
}
