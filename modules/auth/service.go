package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	domain "github.com/example/todo-backend/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new user account and logs it in, returning the user
// and a fresh access token.
func (s *AuthService) Register(_ context.Context, email, password, name string) (*domain.User, *domain.AccessToken, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, ErrInvalidEmail
	}

	// bcrypt truncates at 72 bytes
	if len(password) < 8 {
		return nil, nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, nil, ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		user.Name = &trimmed
	}

	if err := s.repo.Create(user); err != nil {
		return nil, nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login authenticates a user and returns the user with a fresh access
// token. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(_ context.Context, email, password string) (*domain.User, *domain.AccessToken, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.hasher.VerifyStrict(password, user.PasswordHash)
	if err != nil {
		// a digest we produced ourselves failed to parse
		return nil, nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// ValidateToken verifies an access token and returns the caller identity.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	userID, err := s.jwt.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}
	return &domain.Claims{UserID: userID}, nil
}

// GetUser loads the full user record for a previously verified identity.
// Returns ErrUserNotFound when the token outlived the account.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}

// DeleteUser removes the account and cascades to owned tasks.
func (s *AuthService) DeleteUser(_ context.Context, userID string) error {
	return s.repo.Delete(userID)
}

func (s *AuthService) issueToken(userID string) (*domain.AccessToken, error) {
	token, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &domain.AccessToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.jwt.AccessTokenTTLSeconds(),
	}, nil
}
