package services

import (
	"hanabi_backend/internal/config"
	"hanabi_backend/internal/queue"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/storage"
)

// ServiceContainer wires every service once at startup.
type ServiceContainer struct {
	Auth           AuthService
	User           UserService
	Onboarding     OnboardingService
	Verification   VerificationService
	Review         ReviewService
	Notification   NotificationService
	Access         AccessService
	Match          MatchService
	Chat           ChatService
	Recommendation RecommendationService
}

type ContainerDeps struct {
	UserRepo         repositories.UserRepository
	ProfileRepo      repositories.ProfileRepository
	VerificationRepo repositories.VerificationRepository
	NotificationRepo repositories.NotificationRepository
	MatchRepo        repositories.MatchRepository
	ChatRepo         repositories.ChatRepository

	FileStorage storage.Storage
	Producer    queue.Producer
	Broadcaster Broadcaster
	UploadCfg   config.UploadConfig
}

func NewServiceContainer(deps ContainerDeps) *ServiceContainer {
	notificationService := NewNotificationService(deps.NotificationRepo, deps.UserRepo, deps.Broadcaster)
	accessService := NewAccessService(deps.UserRepo, deps.VerificationRepo)
	userService := NewUserService(deps.UserRepo, deps.ProfileRepo, deps.FileStorage)
	verificationService := NewVerificationService(deps.VerificationRepo, deps.UserRepo, deps.FileStorage, deps.UploadCfg)

	return &ServiceContainer{
		Auth:         NewAuthService(deps.UserRepo, userService),
		User:         userService,
		Onboarding:   NewOnboardingService(deps.UserRepo, deps.ProfileRepo, deps.VerificationRepo, verificationService, deps.FileStorage, deps.UploadCfg),
		Verification: verificationService,
		Review: NewReviewService(
			deps.VerificationRepo, deps.UserRepo, deps.ProfileRepo,
			notificationService, deps.FileStorage, deps.Producer,
		),
		Notification: notificationService,
		Access:       accessService,
		Match: NewMatchService(
			deps.MatchRepo, deps.UserRepo, deps.ChatRepo,
			accessService, userService, notificationService,
		),
		Chat: NewChatService(
			deps.ChatRepo, deps.MatchRepo, deps.UserRepo,
			accessService, notificationService, NewStubTranslator(), deps.Broadcaster,
		),
		Recommendation: NewRecommendationService(
			deps.UserRepo, deps.MatchRepo, accessService, userService,
		),
	}
}
