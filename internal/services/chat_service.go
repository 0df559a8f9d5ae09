package services

import (
	"hanabi_backend/internal/i18n"
	"hanabi_backend/internal/logger"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"
)

type ChatService interface {
	SendMessage(userID, matchID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetMessages(userID, matchID string, limit, offset int) (*dto.MessageListResponse, error)
	MarkMessagesRead(userID, matchID string) error
	GetUnreadCount(userID, matchID string) (int64, error)
}

type chatService struct {
	chatRepo            repositories.ChatRepository
	matchRepo           repositories.MatchRepository
	userRepo            repositories.UserRepository
	accessService       AccessService
	notificationService NotificationService
	translator          Translator
	broadcaster         Broadcaster
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	accessService AccessService,
	notificationService NotificationService,
	translator Translator,
	broadcaster Broadcaster,
) ChatService {
	return &chatService{
		chatRepo:            chatRepo,
		matchRepo:           matchRepo,
		userRepo:            userRepo,
		accessService:       accessService,
		notificationService: notificationService,
		translator:          translator,
		broadcaster:         broadcaster,
	}
}

func (s *chatService) SendMessage(userID, matchID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	match, err := s.requireParticipant(userID, matchID)
	if err != nil {
		return nil, err
	}
	// The sender must hold chat access; recommendations-level access is
	// not enough to open a dialog.
	if err := s.accessService.RequireChat(userID); err != nil {
		return nil, err
	}

	partnerID := match.Partner(userID)

	message := &models.Message{
		MatchID:  matchID,
		SenderID: userID,
		Content:  req.Content,
	}

	if req.Translate {
		partner, perr := s.userRepo.FindByID(partnerID)
		if perr == nil {
			target := i18n.ForNationality(partner.Nationality == models.NationalityJapan)
			translated, terr := s.translator.Translate(req.Content, target)
			if terr != nil {
				logger.WithError(terr).Warn("translation failed, sending original only", "match_id", matchID)
			} else {
				message.TranslatedContent = translated
			}
		}
	}

	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.FindByID(userID)
	if err == nil {
		if nerr := s.notificationService.NotifyNewMessage(partnerID, sender.Nickname, message.ID); nerr != nil {
			logger.WithError(nerr).Error("failed to notify new message", "message_id", message.ID)
		}
	}

	resp := buildMessageResponse(message)
	if s.broadcaster != nil {
		s.broadcaster.PushToUser(partnerID, "message", resp)
	}
	return resp, nil
}

func (s *chatService) GetMessages(userID, matchID string, limit, offset int) (*dto.MessageListResponse, error) {
	if _, err := s.requireParticipant(userID, matchID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.FindMessages(matchID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, buildMessageResponse(&messages[i]))
	}
	return &dto.MessageListResponse{
		Messages: responses,
		Total:    len(responses),
	}, nil
}

func (s *chatService) MarkMessagesRead(userID, matchID string) error {
	if _, err := s.requireParticipant(userID, matchID); err != nil {
		return err
	}
	return s.chatRepo.MarkMessagesRead(matchID, userID)
}

func (s *chatService) GetUnreadCount(userID, matchID string) (int64, error) {
	if _, err := s.requireParticipant(userID, matchID); err != nil {
		return 0, err
	}
	return s.chatRepo.GetUnreadCount(matchID, userID)
}

func (s *chatService) requireParticipant(userID, matchID string) (*models.Match, error) {
	match, err := s.matchRepo.FindMatchByID(matchID)
	if err != nil {
		if err == repositories.ErrMatchNotFound {
			return nil, apperrors.NewNotFoundError("match", "Match not found")
		}
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, apperrors.NewForbiddenError("Access denied")
	}
	return match, nil
}

func buildMessageResponse(m *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:                m.ID,
		MatchID:           m.MatchID,
		SenderID:          m.SenderID,
		Content:           m.Content,
		TranslatedContent: m.TranslatedContent,
		IsRead:            m.IsRead,
		ReadAt:            m.ReadAt,
		CreatedAt:         m.CreatedAt,
	}
}
