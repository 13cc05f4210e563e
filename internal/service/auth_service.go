package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"trimly-be/internal/entities"
	"trimly-be/internal/errs"
	"trimly-be/internal/jwt"
	"trimly-be/internal/models"
	"trimly-be/internal/repository"
)

// AuthService defines the interface for account and session business logic
type AuthService interface {
	Register(req *models.RegisterRequest) (*models.UserResponse, error)
	ValidateCredentials(email, password string) (*entities.User, error)
	IssueSession(userID, email string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account. The email must be unused; the stored
// password is a bcrypt hash and never appears in the returned record.
func (s *authService) Register(req *models.RegisterRequest) (*models.UserResponse, error) {
	// Check if user already exists
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("email already in use: %w", errs.ErrConflict)
	}

	// bcrypt.DefaultCost is 10 rounds
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(req.Email, string(hashedPassword))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.UserResponse{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// ValidateCredentials authenticates an email/password pair. Unknown email
// and wrong password deliberately fail with the same error so callers cannot
// enumerate accounts.
func (s *authService) ValidateCredentials(email, password string) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if errs.IsNotFound(err) {
		return nil, errs.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errs.ErrUnauthorized
	}

	return user, nil
}

// IssueSession signs a {user_id, email} claim set. Nothing is persisted;
// a token stays valid until its expiry.
func (s *authService) IssueSession(userID, email string) (string, error) {
	token, err := s.jwtService.GenerateToken(userID, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
