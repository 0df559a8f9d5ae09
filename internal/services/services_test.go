package services

import (
	"context"
	"strings"
	"time"

	"hanabi_backend/internal/config"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/services/dto"
)

type testEnv struct {
	users         *fakeUserRepo
	profiles      *fakeProfileRepo
	verifications *fakeVerificationRepo
	notifications *fakeNotificationRepo
	matches       *fakeMatchRepo
	chats         *fakeChatRepo
	storage       *fakeStorage
	producer      *fakeProducer
	broadcaster   *fakeBroadcaster

	notificationService NotificationService
	accessService       AccessService
	userService         UserService
	verificationService VerificationService
	onboardingService   OnboardingService
	reviewService       ReviewService
	matchService        MatchService
	chatService         ChatService
	recommendations     RecommendationService
}

func testUploadConfig() config.UploadConfig {
	return config.UploadConfig{
		MaxSize:      10 * 1024 * 1024,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
		MaxPhotos:    6,
		MinPhotos:    1,
	}
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newFakeUserRepo(),
		profiles:      newFakeProfileRepo(),
		notifications: newFakeNotificationRepo(),
		matches:       newFakeMatchRepo(),
		chats:         newFakeChatRepo(),
		storage:       newFakeStorage(),
		producer:      newFakeProducer(),
		broadcaster:   &fakeBroadcaster{},
	}
	env.verifications = newFakeVerificationRepo(env.users)

	uploadCfg := testUploadConfig()

	env.notificationService = NewNotificationService(env.notifications, env.users, env.broadcaster)
	env.accessService = NewAccessService(env.users, env.verifications)
	env.userService = NewUserService(env.users, env.profiles, env.storage)
	env.verificationService = NewVerificationService(env.verifications, env.users, env.storage, uploadCfg)
	env.onboardingService = NewOnboardingService(env.users, env.profiles, env.verifications, env.verificationService, env.storage, uploadCfg)
	env.reviewService = NewReviewService(env.verifications, env.users, env.profiles, env.notificationService, env.storage, env.producer)
	env.matchService = NewMatchService(env.matches, env.users, env.chats, env.accessService, env.userService, env.notificationService)
	env.chatService = NewChatService(env.chats, env.matches, env.users, env.accessService, env.notificationService, NewStubTranslator(), env.broadcaster)
	env.recommendations = NewRecommendationService(env.users, env.matches, env.accessService, env.userService)
	return env
}

func (env *testEnv) addUser(nationality models.Nationality, opts ...func(*models.User)) *models.User {
	birthdate := time.Now().AddDate(-25, 0, 0)
	user := &models.User{
		Email:          strings.ToLower(string(nationality)) + "-user@example.com",
		PasswordHash:   "x",
		Role:           models.UserRoleUser,
		Nickname:       "nick-" + string(nationality),
		Gender:         models.GenderFemale,
		Birthdate:      &birthdate,
		City:           "Seoul",
		Nationality:    nationality,
		OnboardingStep: StepVerification,
	}
	for _, opt := range opts {
		opt(user)
	}
	return env.users.add(user)
}

func (env *testEnv) addAdmin() *models.User {
	return env.users.add(&models.User{
		Email:        "admin@example.com",
		PasswordHash: "x",
		Role:         models.UserRoleAdmin,
		Nickname:     "admin",
	})
}

func (env *testEnv) addPhoto(userID string) {
	env.profiles.AddPhoto(&models.ProfilePhoto{UserID: userID, Path: "photos/" + userID + "/p.jpg", IsPrimary: true})
}

func asVerified(user *models.User) {
	user.IsVerified = true
}

func testCtx() context.Context {
	return context.Background()
}

func imageUpload(name string) dto.FileInput {
	return dto.FileInput{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        1024,
		Reader:      strings.NewReader("jpeg-bytes"),
	}
}

func (env *testEnv) submitIdentity(user *models.User, docType models.DocumentType) *dto.IdentityVerificationResponse {
	resp, err := env.verificationService.SubmitIdentity(testCtx(), user.ID, &dto.SubmitVerificationInput{
		DocType:  string(docType),
		Document: imageUpload("doc.jpg"),
	})
	if err != nil {
		panic(err)
	}
	return resp
}
