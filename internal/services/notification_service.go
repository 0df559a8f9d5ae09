package services

import (
	"fmt"

	"hanabi_backend/internal/i18n"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"
)

// Broadcaster pushes an event to a connected user; the websocket hub
// implements it. A nil broadcaster disables realtime delivery.
type Broadcaster interface {
	PushToUser(userID string, event string, payload interface{})
}

type NotificationService interface {
	GetUserNotifications(userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error
	DeleteAllNotifications(userID string) error
	GetUnreadCount(userID string) (int64, error)

	// Fan-out factories. Created exclusively as side effects of state
	// transitions; callers log and swallow the returned error so a failed
	// insert never blocks the transition that triggered it.
	NotifyVerifyPassed(userID, relatedID string) error
	NotifyVerifyRejected(userID, relatedID, reason string) error
	NotifyRequestDecided(userID, relatedID string, reqType models.RequestType, approved bool, reason string) error
	NotifyMatchRequest(toUserID, fromNickname, relatedID string) error
	NotifyMatchAccepted(toUserID, partnerNickname, relatedID string) error
	NotifyMatchRejected(toUserID, relatedID string) error
	NotifyNewMessage(recipientID, senderNickname, relatedID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	broadcaster      Broadcaster
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	broadcaster Broadcaster,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		broadcaster:      broadcaster,
	}
}

// ---------------- recipient operations ----------------

func (s *notificationService) GetUserNotifications(userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	repoCriteria := repositories.NotificationCriteria{
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
		Unread:   criteria.Unread,
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, repoCriteria)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		return apperrors.NewNotFoundError("notification", "Notification not found")
	}
	if notification.UserID != userID {
		return apperrors.NewForbiddenError("Access denied")
	}
	return s.notificationRepo.MarkAsRead(notificationID)
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	return s.notificationRepo.MarkAllAsRead(userID)
}

func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		return apperrors.NewNotFoundError("notification", "Notification not found")
	}
	if notification.UserID != userID {
		return apperrors.NewForbiddenError("Access denied")
	}
	return s.notificationRepo.Delete(notificationID)
}

func (s *notificationService) DeleteAllNotifications(userID string) error {
	return s.notificationRepo.DeleteUserNotifications(userID)
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	return s.notificationRepo.GetUnreadCount(userID)
}

// ---------------- fan-out factories ----------------

func (s *notificationService) NotifyVerifyPassed(userID, relatedID string) error {
	lang := s.recipientLanguage(userID)
	return s.insert(&models.Notification{
		UserID:    userID,
		Type:      models.NotificationVerifyPassed,
		Title:     i18n.T(lang, i18n.KeyVerifyPassedTitle),
		Message:   i18n.T(lang, i18n.KeyVerifyPassedBody),
		RelatedID: relatedID,
	})
}

func (s *notificationService) NotifyVerifyRejected(userID, relatedID, reason string) error {
	lang := s.recipientLanguage(userID)
	return s.insert(&models.Notification{
		UserID:    userID,
		Type:      models.NotificationVerifyRejected,
		Title:     i18n.T(lang, i18n.KeyVerifyRejectedTitle),
		Message:   reason,
		RelatedID: relatedID,
	})
}

func (s *notificationService) NotifyRequestDecided(userID, relatedID string, reqType models.RequestType, approved bool, reason string) error {
	lang := s.recipientLanguage(userID)

	var notifType models.NotificationType
	var titleKey, body string
	switch {
	case approved && reqType == models.RequestTypeBioUpdate:
		notifType, titleKey = models.NotificationProfilePhotoApproved, i18n.KeyBioApprovedTitle
	case approved:
		notifType, titleKey = models.NotificationProfilePhotoApproved, i18n.KeyPhotoApprovedTitle
	case reqType == models.RequestTypeBioUpdate:
		notifType, titleKey, body = models.NotificationProfilePhotoRejected, i18n.KeyBioRejectedTitle, reason
	default:
		notifType, titleKey, body = models.NotificationProfilePhotoRejected, i18n.KeyPhotoRejectedTitle, reason
	}

	return s.insert(&models.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     i18n.T(lang, titleKey),
		Message:   body,
		RelatedID: relatedID,
	})
}

func (s *notificationService) NotifyMatchRequest(toUserID, fromNickname, relatedID string) error {
	lang := s.recipientLanguage(toUserID)
	return s.insert(&models.Notification{
		UserID:    toUserID,
		Type:      models.NotificationMatchRequest,
		Title:     i18n.T(lang, i18n.KeyMatchRequestTitle),
		Message:   fromNickname,
		RelatedID: relatedID,
	})
}

func (s *notificationService) NotifyMatchAccepted(toUserID, partnerNickname, relatedID string) error {
	lang := s.recipientLanguage(toUserID)
	return s.insert(&models.Notification{
		UserID:    toUserID,
		Type:      models.NotificationMatchAccepted,
		Title:     i18n.T(lang, i18n.KeyMatchAcceptedTitle),
		Message:   partnerNickname,
		RelatedID: relatedID,
	})
}

func (s *notificationService) NotifyMatchRejected(toUserID, relatedID string) error {
	lang := s.recipientLanguage(toUserID)
	return s.insert(&models.Notification{
		UserID:    toUserID,
		Type:      models.NotificationMatchRejected,
		Title:     i18n.T(lang, i18n.KeyMatchRejectedTitle),
		RelatedID: relatedID,
	})
}

func (s *notificationService) NotifyNewMessage(recipientID, senderNickname, relatedID string) error {
	lang := s.recipientLanguage(recipientID)
	return s.insert(&models.Notification{
		UserID:    recipientID,
		Type:      models.NotificationNewMessage,
		Title:     i18n.T(lang, i18n.KeyNewMessageTitle),
		Message:   senderNickname,
		RelatedID: relatedID,
	})
}

// ---------------- helpers ----------------

func (s *notificationService) insert(notification *models.Notification) error {
	if !models.IsValidNotificationType(notification.Type) {
		return fmt.Errorf("invalid notification type: %s", notification.Type)
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.PushToUser(notification.UserID, "notification", buildNotificationResponse(notification))
	}
	return nil
}

func (s *notificationService) recipientLanguage(userID string) i18n.Language {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return i18n.LanguageKorean
	}
	return i18n.ForNationality(user.Nationality == models.NationalityJapan)
}

func buildNotificationResponse(n *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		RelatedID: n.RelatedID,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
