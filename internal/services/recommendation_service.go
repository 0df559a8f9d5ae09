package services

import (
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"
)

// RecommendationService lists candidates from the opposite nationality:
// Korean users browse Japanese profiles and vice versa.
type RecommendationService interface {
	GetCandidates(userID string, limit, offset int) ([]*dto.CandidateResponse, error)
}

type recommendationService struct {
	userRepo      repositories.UserRepository
	matchRepo     repositories.MatchRepository
	accessService AccessService
	userService   UserService
}

func NewRecommendationService(
	userRepo repositories.UserRepository,
	matchRepo repositories.MatchRepository,
	accessService AccessService,
	userService UserService,
) RecommendationService {
	return &recommendationService{
		userRepo:      userRepo,
		matchRepo:     matchRepo,
		accessService: accessService,
		userService:   userService,
	}
}

func (s *recommendationService) GetCandidates(userID string, limit, offset int) ([]*dto.CandidateResponse, error) {
	if err := s.accessService.RequireRecommendations(userID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	if user.Nationality == "" {
		return nil, apperrors.NewBadRequestError("Nationality must be chosen first")
	}

	likedIDs, err := s.matchRepo.FindLikedUserIDs(userID)
	if err != nil {
		return nil, err
	}
	exclude := append(likedIDs, userID)

	candidates, err := s.userRepo.FindByNationality(user.Nationality.Opposite(), exclude, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		responses = append(responses, s.userService.BuildCandidateResponse(&candidates[i]))
	}
	return responses, nil
}
