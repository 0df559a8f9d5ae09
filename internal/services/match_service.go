package services

import (
	"hanabi_backend/internal/logger"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"
)

type MatchService interface {
	SendLike(fromUserID string, req *dto.LikeRequest) (*dto.LikeResponse, error)
	AcceptLike(userID, likeID string) (*dto.MatchResponse, error)
	RejectLike(userID, likeID string) error
	ListIncomingLikes(userID string) ([]*dto.LikeResponse, error)
	ListMatches(userID string) ([]*dto.MatchResponse, error)
}

type matchService struct {
	matchRepo           repositories.MatchRepository
	userRepo            repositories.UserRepository
	chatRepo            repositories.ChatRepository
	accessService       AccessService
	userService         UserService
	notificationService NotificationService
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	chatRepo repositories.ChatRepository,
	accessService AccessService,
	userService UserService,
	notificationService NotificationService,
) MatchService {
	return &matchService{
		matchRepo:           matchRepo,
		userRepo:            userRepo,
		chatRepo:            chatRepo,
		accessService:       accessService,
		userService:         userService,
		notificationService: notificationService,
	}
}

func (s *matchService) SendLike(fromUserID string, req *dto.LikeRequest) (*dto.LikeResponse, error) {
	if fromUserID == req.ToUserID {
		return nil, apperrors.NewBadRequestError("Cannot like yourself")
	}
	// Likes ride on the recommendations surface and share its gate.
	if err := s.accessService.RequireRecommendations(fromUserID); err != nil {
		return nil, err
	}

	from, err := s.userRepo.FindByID(fromUserID)
	if err != nil {
		return nil, mapUserError(err)
	}
	if _, err := s.userRepo.FindByID(req.ToUserID); err != nil {
		return nil, mapUserError(err)
	}

	like := &models.Like{
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Status:     models.LikeStatusPending,
	}
	if err := s.matchRepo.CreateLike(like); err != nil {
		if err == repositories.ErrLikeAlreadyExists {
			return nil, apperrors.NewConflictError("match", "Like already sent")
		}
		return nil, err
	}

	if nerr := s.notificationService.NotifyMatchRequest(req.ToUserID, from.Nickname, like.ID); nerr != nil {
		logger.WithError(nerr).Error("failed to notify match request", "like_id", like.ID)
	}

	return s.buildLikeResponse(like, nil), nil
}

func (s *matchService) AcceptLike(userID, likeID string) (*dto.MatchResponse, error) {
	like, err := s.findAddressedLike(userID, likeID)
	if err != nil {
		return nil, err
	}

	decided, err := s.matchRepo.DecideLike(likeID, models.LikeStatusAccepted)
	if err != nil {
		return nil, mapLikeDecisionError(err)
	}

	// Crossed likes accepted from both sides land on the same pair; the
	// first acceptance owns the match row.
	match, err := s.matchRepo.FindMatchBetween(decided.FromUserID, decided.ToUserID)
	if err == repositories.ErrMatchNotFound {
		match = &models.Match{
			UserAID: orderedPair(decided.FromUserID, decided.ToUserID),
			UserBID: orderedPairSecond(decided.FromUserID, decided.ToUserID),
		}
		if err := s.matchRepo.CreateMatch(match); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	accepter, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	if nerr := s.notificationService.NotifyMatchAccepted(like.FromUserID, accepter.Nickname, match.ID); nerr != nil {
		logger.WithError(nerr).Error("failed to notify match accepted", "match_id", match.ID)
	}

	return s.buildMatchResponse(match, userID)
}

func (s *matchService) RejectLike(userID, likeID string) error {
	like, err := s.findAddressedLike(userID, likeID)
	if err != nil {
		return err
	}

	if _, err := s.matchRepo.DecideLike(likeID, models.LikeStatusRejected); err != nil {
		return mapLikeDecisionError(err)
	}

	if nerr := s.notificationService.NotifyMatchRejected(like.FromUserID, likeID); nerr != nil {
		logger.WithError(nerr).Error("failed to notify match rejected", "like_id", likeID)
	}
	return nil
}

func (s *matchService) ListIncomingLikes(userID string) ([]*dto.LikeResponse, error) {
	likes, err := s.matchRepo.FindPendingLikesTo(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.LikeResponse, 0, len(likes))
	for i := range likes {
		var from *dto.CandidateResponse
		if sender, err := s.userRepo.FindByID(likes[i].FromUserID); err == nil {
			from = s.userService.BuildCandidateResponse(sender)
		}
		responses = append(responses, s.buildLikeResponse(&likes[i], from))
	}
	return responses, nil
}

func (s *matchService) ListMatches(userID string) ([]*dto.MatchResponse, error) {
	matches, err := s.matchRepo.FindMatchesByUser(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MatchResponse, 0, len(matches))
	for i := range matches {
		resp, err := s.buildMatchResponse(&matches[i], userID)
		if err != nil {
			logger.WithError(err).Warn("skipping match with missing partner", "match_id", matches[i].ID)
			continue
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ---------------- helpers ----------------

func (s *matchService) findAddressedLike(userID, likeID string) (*models.Like, error) {
	like, err := s.matchRepo.FindLikeByID(likeID)
	if err != nil {
		if err == repositories.ErrLikeNotFound {
			return nil, apperrors.NewNotFoundError("match", "Like not found")
		}
		return nil, err
	}
	if like.ToUserID != userID {
		return nil, apperrors.NewForbiddenError("Access denied")
	}
	return like, nil
}

func (s *matchService) buildLikeResponse(like *models.Like, from *dto.CandidateResponse) *dto.LikeResponse {
	return &dto.LikeResponse{
		ID:         like.ID,
		FromUserID: like.FromUserID,
		ToUserID:   like.ToUserID,
		Status:     like.Status,
		CreatedAt:  like.CreatedAt,
		From:       from,
	}
}

func (s *matchService) buildMatchResponse(match *models.Match, viewerID string) (*dto.MatchResponse, error) {
	partner, err := s.userRepo.FindByID(match.Partner(viewerID))
	if err != nil {
		return nil, mapUserError(err)
	}

	resp := &dto.MatchResponse{
		ID:        match.ID,
		Partner:   s.userService.BuildCandidateResponse(partner),
		CreatedAt: match.CreatedAt,
	}
	if last, err := s.chatRepo.FindLastMessage(match.ID); err == nil {
		resp.LastMessage = buildMessageResponse(last)
	}
	return resp, nil
}

func mapLikeDecisionError(err error) error {
	switch err {
	case repositories.ErrLikeNotFound:
		return apperrors.NewNotFoundError("match", "Like not found")
	case repositories.ErrLikeAlreadyDecided:
		return apperrors.NewConflictError("match", "Like already decided")
	}
	return err
}

// Match rows store the pair in a canonical order so the unique index
// catches duplicates regardless of who accepted.
func orderedPair(a, b string) string {
	if a < b {
		return a
	}
	return b
}

func orderedPairSecond(a, b string) string {
	if a < b {
		return b
	}
	return a
}
