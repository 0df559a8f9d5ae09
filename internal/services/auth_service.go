package services

import (
	"strings"

	"hanabi_backend/internal/auth"
	"hanabi_backend/internal/logger"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)

	// EnsureAdmin creates the configured admin account if it does not
	// exist yet. Called once at startup.
	EnsureAdmin(email, password string) error
}

type authService struct {
	userRepo    repositories.UserRepository
	userService UserService
}

func NewAuthService(userRepo repositories.UserRepository, userService UserService) AuthService {
	return &authService{
		userRepo:    userRepo,
		userService: userService,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apperrors.NewConflictError("user", "Email already registered")
	} else if err != repositories.ErrUserNotFound {
		return nil, err
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:          email,
		PasswordHash:   hash,
		Role:           models.UserRoleUser,
		OnboardingStep: StepNationality,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	return s.issueToken(user)
}

func (s *authService) EnsureAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil
	} else if err != repositories.ErrUserNotFound {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:               email,
		PasswordHash:        hash,
		Role:                models.UserRoleAdmin,
		Nickname:            "admin",
		OnboardingCompleted: true,
		OnboardingStep:      StepVerification,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}
	logger.Info("admin account created", "email", email)
	return nil
}

func (s *authService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		User:        s.userService.BuildUserResponse(user, true),
	}, nil
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
}
