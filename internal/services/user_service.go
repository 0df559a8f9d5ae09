package services

import (
	"context"

	"hanabi_backend/internal/logger"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/internal/storage"
	"hanabi_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	GetPublicProfile(viewerID, userID string) (*dto.CandidateResponse, error)
	SetPrimaryPhoto(userID, photoID string) error
	DeletePhoto(ctx context.Context, userID, photoID string) error
	DeleteAccount(userID string) error

	// Projections shared with the auth and match services.
	BuildUserResponse(user *models.User, includePrivate bool) *dto.UserResponse
	BuildCandidateResponse(user *models.User) *dto.CandidateResponse
}

type userService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	fileStorage storage.Storage
}

func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	fileStorage storage.Storage,
) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		fileStorage: fileStorage,
	}
}

func (s *userService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapUserError(err)
	}

	resp := s.BuildUserResponse(user, true)
	if profile, err := s.profileRepo.FindProfileByUser(userID); err == nil {
		resp.Job = profile.Job
		resp.Education = profile.Education
	}
	return resp, nil
}

func (s *userService) GetPublicProfile(viewerID, userID string) (*dto.CandidateResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	return s.BuildCandidateResponse(user), nil
}

func (s *userService) SetPrimaryPhoto(userID, photoID string) error {
	return s.profileRepo.SetPrimaryPhoto(userID, photoID)
}

func (s *userService) DeletePhoto(ctx context.Context, userID, photoID string) error {
	photos, err := s.profileRepo.FindPhotosByUser(userID)
	if err != nil {
		return err
	}

	var target *models.ProfilePhoto
	for i := range photos {
		if photos[i].ID == photoID {
			target = &photos[i]
			break
		}
	}
	if target == nil {
		return apperrors.NewNotFoundError("photo", "Photo not found")
	}

	if err := s.profileRepo.DeletePhoto(userID, photoID); err != nil {
		return err
	}

	// Row is gone; a stale artifact is acceptable and logged.
	if err := s.fileStorage.Delete(ctx, target.Path); err != nil {
		logger.WithError(err).Warn("photo artifact not deleted", "path", target.Path)
	}
	return nil
}

func (s *userService) DeleteAccount(userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return mapUserError(err)
	}
	// Owned rows go with the user via FK cascade; artifacts stay for the
	// storage retention sweep.
	return s.userRepo.Delete(userID)
}

// ---------------- projections ----------------

func (s *userService) BuildUserResponse(user *models.User, includePrivate bool) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:                  user.ID,
		Nickname:            user.Nickname,
		Gender:              user.Gender,
		City:                user.City,
		Nationality:         user.Nationality,
		Bio:                 user.Bio,
		IsVerified:          user.IsVerified,
		OnboardingCompleted: user.OnboardingCompleted,
		OnboardingStep:      user.OnboardingStep,
		Photos:              s.buildPhotoResponses(user.Photos),
		CreatedAt:           user.CreatedAt,
	}
	if includePrivate {
		resp.Email = user.Email
		resp.Birthdate = user.Birthdate
	}
	for _, interest := range user.Interests {
		resp.Interests = append(resp.Interests, interest.Name)
	}
	return resp
}

func (s *userService) BuildCandidateResponse(user *models.User) *dto.CandidateResponse {
	return &dto.CandidateResponse{
		ID:          user.ID,
		Nickname:    user.Nickname,
		City:        user.City,
		Nationality: user.Nationality,
		Bio:         user.Bio,
		IsVerified:  user.IsVerified,
		Photos:      s.buildPhotoResponses(user.Photos),
	}
}

func (s *userService) buildPhotoResponses(photos []models.ProfilePhoto) []dto.PhotoResponse {
	if len(photos) == 0 {
		return nil
	}
	responses := make([]dto.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		url, err := s.fileStorage.GetURL(context.Background(), photo.Path)
		if err != nil {
			logger.WithError(err).Warn("failed to build photo url", "photo_id", photo.ID)
			continue
		}
		responses = append(responses, dto.PhotoResponse{
			ID:        photo.ID,
			URL:       url,
			SortOrder: photo.SortOrder,
			IsPrimary: photo.IsPrimary,
		})
	}
	return responses
}

func mapUserError(err error) error {
	if err == repositories.ErrUserNotFound {
		return apperrors.UserNotFound()
	}
	return err
}
