package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	OnboardingHandler   *OnboardingHandler
	VerificationHandler *VerificationHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
	MatchHandler        *MatchHandler
	ChatHandler         *ChatHandler
	FileHandler         *FileHandler
}
