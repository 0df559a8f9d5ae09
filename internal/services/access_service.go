package services

import (
	"hanabi_backend/internal/repositories"
	"hanabi_backend/pkg/apperrors"
)

// AccessService gates feature surfaces on verification state. Chat is
// strict: only verified users pass. Recommendations also admit users who
// have an identity submission awaiting review, so browsing is possible
// while the queue is worked through.
type AccessService interface {
	RequireChat(userID string) error
	RequireRecommendations(userID string) error
	CanAccessChat(userID string) (bool, error)
	CanAccessRecommendations(userID string) (bool, error)
}

type accessService struct {
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationRepository
}

func NewAccessService(
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationRepository,
) AccessService {
	return &accessService{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
	}
}

func (s *accessService) CanAccessChat(userID string) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, err
	}
	return user.IsVerified, nil
}

func (s *accessService) CanAccessRecommendations(userID string) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, err
	}
	if user.IsVerified {
		return true, nil
	}
	return s.verificationRepo.HasOutstandingIdentity(userID)
}

func (s *accessService) RequireChat(userID string) error {
	allowed, err := s.CanAccessChat(userID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ChatNotAllowed()
	}
	return nil
}

func (s *accessService) RequireRecommendations(userID string) error {
	allowed, err := s.CanAccessRecommendations(userID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.RecommendationsNotAllowed()
	}
	return nil
}
