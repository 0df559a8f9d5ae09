package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"hanabi_backend/internal/logger"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/queue"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/internal/storage"
	"hanabi_backend/pkg/apperrors"
)

const documentURLExpiry = 15 * time.Minute

// ReviewService is the admin side of the moderation pipeline: the pending
// queue plus the approve/reject transitions for identity submissions and
// photo/bio change requests. Every successful decision produces exactly one
// notification for the applicant and one decision event on the bus.
type ReviewService interface {
	ListPending(limit, offset int) (*dto.PendingReviewResponse, error)

	ApproveIdentity(adminID, verificationID string) (*dto.IdentityVerificationResponse, error)
	RejectIdentity(adminID, verificationID, reason string) (*dto.IdentityVerificationResponse, error)

	ApproveRequest(adminID, requestID string) (*dto.VerificationRequestResponse, error)
	RejectRequest(adminID, requestID, reason string) (*dto.VerificationRequestResponse, error)
}

type reviewService struct {
	verificationRepo    repositories.VerificationRepository
	userRepo            repositories.UserRepository
	profileRepo         repositories.ProfileRepository
	notificationService NotificationService
	fileStorage         storage.Storage
	producer            queue.Producer
}

func NewReviewService(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notificationService NotificationService,
	fileStorage storage.Storage,
	producer queue.Producer,
) ReviewService {
	return &reviewService{
		verificationRepo:    verificationRepo,
		userRepo:            userRepo,
		profileRepo:         profileRepo,
		notificationService: notificationService,
		fileStorage:         fileStorage,
		producer:            producer,
	}
}

// ---------------- pending queue ----------------

func (s *reviewService) ListPending(limit, offset int) (*dto.PendingReviewResponse, error) {
	identity, err := s.verificationRepo.ListPendingIdentity(limit, offset)
	if err != nil {
		return nil, err
	}
	photos, err := s.verificationRepo.ListPendingRequests(models.RequestTypeProfilePhoto, limit, offset)
	if err != nil {
		return nil, err
	}
	bios, err := s.verificationRepo.ListPendingRequests(models.RequestTypeBioUpdate, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.PendingReviewResponse{
		Identity:      make([]dto.IdentityVerificationResponse, 0, len(identity)),
		ProfilePhotos: make([]dto.VerificationRequestResponse, 0, len(photos)),
		BioUpdates:    make([]dto.VerificationRequestResponse, 0, len(bios)),
	}

	groups := make(map[string]*dto.PendingReviewGroup)
	order := make([]string, 0)
	group := func(userID, nickname string) *dto.PendingReviewGroup {
		g, ok := groups[userID]
		if !ok {
			g = &dto.PendingReviewGroup{UserID: userID, Nickname: nickname}
			groups[userID] = g
			order = append(order, userID)
		}
		return g
	}

	for i := range identity {
		item := s.buildIdentityResponse(&identity[i], true)
		resp.Identity = append(resp.Identity, *item)
		g := group(identity[i].UserID, displayName(identity[i].User))
		g.Identity = append(g.Identity, *item)
	}
	for i := range photos {
		item := s.buildRequestResponse(&photos[i], true)
		resp.ProfilePhotos = append(resp.ProfilePhotos, *item)
		g := group(photos[i].UserID, displayName(photos[i].User))
		g.Requests = append(g.Requests, *item)
	}
	for i := range bios {
		item := s.buildRequestResponse(&bios[i], true)
		resp.BioUpdates = append(resp.BioUpdates, *item)
		g := group(bios[i].UserID, displayName(bios[i].User))
		g.Requests = append(g.Requests, *item)
	}

	resp.ByUser = make([]dto.PendingReviewGroup, 0, len(order))
	for _, userID := range order {
		resp.ByUser = append(resp.ByUser, *groups[userID])
	}
	return resp, nil
}

// ---------------- identity decisions ----------------

func (s *reviewService) ApproveIdentity(adminID, verificationID string) (*dto.IdentityVerificationResponse, error) {
	return s.decideIdentity(adminID, verificationID, models.VerificationStatusApproved, "")
}

func (s *reviewService) RejectIdentity(adminID, verificationID, reason string) (*dto.IdentityVerificationResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.RejectionReasonRequired()
	}
	return s.decideIdentity(adminID, verificationID, models.VerificationStatusRejected, reason)
}

func (s *reviewService) decideIdentity(adminID, verificationID string, status models.VerificationStatus, reason string) (*dto.IdentityVerificationResponse, error) {
	iv, err := s.verificationRepo.DecideIdentity(verificationID, adminID, status, reason)
	if err != nil {
		return nil, mapDecisionError(err)
	}

	// The transition is committed at this point. Notification and event
	// failures are logged, never surfaced.
	if status == models.VerificationStatusApproved {
		if nerr := s.notificationService.NotifyVerifyPassed(iv.UserID, iv.ID); nerr != nil {
			logger.WithError(nerr).Error("failed to notify identity approval", "verification_id", iv.ID)
		}
	} else {
		if nerr := s.notificationService.NotifyVerifyRejected(iv.UserID, iv.ID, reason); nerr != nil {
			logger.WithError(nerr).Error("failed to notify identity rejection", "verification_id", iv.ID)
		}
	}

	s.producer.PublishDecision(queue.DecisionEvent{
		RequestID:   iv.ID,
		UserID:      iv.UserID,
		RequestType: "identity",
		Decision:    string(status),
		Reason:      reason,
		DecidedAt:   time.Now(),
	})

	return s.buildIdentityResponse(iv, false), nil
}

// ---------------- photo / bio decisions ----------------

func (s *reviewService) ApproveRequest(adminID, requestID string) (*dto.VerificationRequestResponse, error) {
	return s.decideRequest(adminID, requestID, models.RequestStatusApproved, "")
}

func (s *reviewService) RejectRequest(adminID, requestID, reason string) (*dto.VerificationRequestResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.RejectionReasonRequired()
	}
	return s.decideRequest(adminID, requestID, models.RequestStatusRejected, reason)
}

func (s *reviewService) decideRequest(adminID, requestID string, status models.RequestStatus, reason string) (*dto.VerificationRequestResponse, error) {
	vr, err := s.verificationRepo.DecideRequest(requestID, adminID, status, reason)
	if err != nil {
		return nil, mapDecisionError(err)
	}

	if status == models.RequestStatusApproved {
		if aerr := s.applyApprovedRequest(vr); aerr != nil {
			logger.WithError(aerr).Error("failed to apply approved request", "request_id", vr.ID, "type", vr.Type)
		}
	}

	if nerr := s.notificationService.NotifyRequestDecided(vr.UserID, vr.ID, vr.Type, status == models.RequestStatusApproved, reason); nerr != nil {
		logger.WithError(nerr).Error("failed to notify request decision", "request_id", vr.ID)
	}

	s.producer.PublishDecision(queue.DecisionEvent{
		RequestID:   vr.ID,
		UserID:      vr.UserID,
		RequestType: string(vr.Type),
		Decision:    string(status),
		Reason:      reason,
		DecidedAt:   time.Now(),
	})

	return s.buildRequestResponse(vr, false), nil
}

// applyApprovedRequest copies the approved payload onto the live profile.
// Until this point the proposed photo or bio is visible only to admins.
func (s *reviewService) applyApprovedRequest(vr *models.VerificationRequest) error {
	payload, err := parseRequestPayload(vr)
	if err != nil {
		return err
	}

	switch vr.Type {
	case models.RequestTypeProfilePhoto:
		count, err := s.profileRepo.CountPhotos(vr.UserID)
		if err != nil {
			return err
		}
		return s.profileRepo.AddPhoto(&models.ProfilePhoto{
			UserID:    vr.UserID,
			Path:      payload.PhotoPath,
			SortOrder: int(count),
			IsPrimary: count == 0,
		})
	case models.RequestTypeBioUpdate:
		return s.userRepo.UpdateFields(vr.UserID, map[string]interface{}{"bio": payload.Bio})
	}
	return nil
}

type requestPayload struct {
	PhotoPath string `json:"photo_path,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

func parseRequestPayload(vr *models.VerificationRequest) (*requestPayload, error) {
	var payload requestPayload
	if len(vr.Payload) > 0 {
		if err := json.Unmarshal(vr.Payload, &payload); err != nil {
			return nil, err
		}
	}
	return &payload, nil
}

// ---------------- helpers ----------------

// displayName tolerates rows loaded without their user row.
func displayName(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.Nickname
}

func mapDecisionError(err error) error {
	switch err {
	case repositories.ErrVerificationNotFound:
		return apperrors.VerificationNotFound()
	case repositories.ErrAlreadyDecided:
		return apperrors.VerificationAlreadyDecided()
	}
	return err
}

func (s *reviewService) buildIdentityResponse(iv *models.IdentityVerification, withURL bool) *dto.IdentityVerificationResponse {
	resp := &dto.IdentityVerificationResponse{
		ID:              iv.ID,
		UserID:          iv.UserID,
		DocType:         iv.DocType,
		CountryCode:     iv.CountryCode,
		Status:          iv.Status,
		RejectionReason: iv.RejectionReason,
		SubmittedAt:     iv.CreatedAt,
		ReviewedAt:      iv.ReviewedAt,
		Nickname:        displayName(iv.User),
	}
	if withURL && iv.ArtifactPath != "" {
		url, err := s.fileStorage.GetSignedURL(context.Background(), iv.ArtifactPath, documentURLExpiry)
		if err != nil {
			// A submission whose artifact vanished stays reviewable; admins
			// see it without a document preview and will usually reject it.
			logger.WithError(err).Warn("failed to sign document url", "verification_id", iv.ID)
		} else {
			resp.DocumentURL = url
		}
	}
	return resp
}

func (s *reviewService) buildRequestResponse(vr *models.VerificationRequest, withURL bool) *dto.VerificationRequestResponse {
	resp := &dto.VerificationRequestResponse{
		ID:              vr.ID,
		UserID:          vr.UserID,
		Type:            vr.Type,
		Status:          vr.Status,
		RejectionReason: vr.RejectionReason,
		CreatedAt:       vr.CreatedAt,
		Nickname:        displayName(vr.User),
	}

	payload, err := parseRequestPayload(vr)
	if err != nil {
		logger.WithError(err).Warn("malformed request payload", "request_id", vr.ID)
		return resp
	}
	resp.ProposedBio = payload.Bio
	if withURL && payload.PhotoPath != "" {
		url, serr := s.fileStorage.GetSignedURL(context.Background(), payload.PhotoPath, documentURLExpiry)
		if serr != nil {
			logger.WithError(serr).Warn("failed to sign photo url", "request_id", vr.ID)
		} else {
			resp.PhotoURL = url
		}
	}
	return resp
}
