package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	taskdomain "github.com/example/todo-backend/domain/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/todo-backend/domain/user"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &taskdomain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "test-issuer",
	})
	return NewAuthService(repo, hasher, jwtManager), db
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := service.Register(ctx, "user@example.com", "password123", "Test User")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Register() returned user without id")
	}
	if user.Email != "user@example.com" {
		t.Errorf("user.Email = %v, want user@example.com", user.Email)
	}
	if user.Name == nil || *user.Name != "Test User" {
		t.Errorf("user.Name = %v, want Test User", user.Name)
	}
	if user.EmailVerified {
		t.Error("new user should not be email-verified")
	}
	if token == nil || token.Token == "" {
		t.Fatal("Register() returned no access token")
	}

	loginUser, loginToken, err := service.Login(ctx, "user@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loginUser.ID != user.ID {
		t.Errorf("Login() user id = %v, want %v", loginUser.ID, user.ID)
	}

	// the issued token resolves back to the same identity
	claims, err := service.ValidateToken(ctx, loginToken.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("ValidateToken() user id = %v, want %v", claims.UserID, user.ID)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "invalid email",
			email:    "not-an-email",
			password: "password123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "short password",
			email:    "short@example.com",
			password: "1234567",
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "password over bcrypt limit",
			email:    "long@example.com",
			password: "aaaaaaaabbbbbbbbccccccccddddddddeeeeeeeeffffffffgggggggghhhhhhhhiiiiiiiii",
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Register(ctx, tt.email, tt.password, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := service.Register(ctx, "dup@example.com", "password123", ""); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, _, err := service.Register(ctx, "dup@example.com", "otherpassword", "")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("second Register() error = %v, want ErrUserExists", err)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := service.Register(ctx, "login@example.com", "password123", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := service.Login(ctx, "login@example.com", "wrongpassword")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email looks identical", func(t *testing.T) {
		_, _, err := service.Login(ctx, "nobody@example.com", "password123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthService_LoginCorruptDigest(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	// a stored digest that is not a bcrypt hash is data corruption, not a
	// credential failure; it must not read as a wrong password
	user := &domain.User{
		ID:           "corrupt-user",
		Email:        "corrupt@example.com",
		PasswordHash: "not-a-bcrypt-digest",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	_, _, err := service.Login(ctx, "corrupt@example.com", "password123")
	if err == nil {
		t.Fatal("Login() succeeded against a corrupt digest")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("Login() error = ErrInvalidCredentials, want an internal error")
	}
	if !errors.Is(err, ErrMalformedDigest) {
		t.Errorf("Login() error = %v, want wrapped ErrMalformedDigest", err)
	}
}

func TestAuthService_GetUserAfterDeletion(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := service.Register(ctx, "gone@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := service.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	// the token is still cryptographically valid (not revocable)...
	claims, err := service.ValidateToken(ctx, token.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("ValidateToken() user id = %v, want %v", claims.UserID, user.ID)
	}

	// ...but the identity record is gone
	_, err = service.GetUser(ctx, user.ID)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_DeleteCascadesTasks(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	user, _, err := service.Register(ctx, "owner@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	other, _, err := service.Register(ctx, "other@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	for i, ownerID := range []string{user.ID, user.ID, other.ID} {
		task := &taskdomain.Task{
			ID:       string(rune('a'+i)) + "-task",
			OwnerID:  ownerID,
			Title:    "Task",
			Priority: taskdomain.PriorityMedium,
		}
		if err := db.Create(task).Error; err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
	}

	if err := service.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	var count int64
	if err := db.Model(&taskdomain.Task{}).Where("owner_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count tasks: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 tasks for deleted user, got %d", count)
	}

	// the other user's tasks are untouched
	if err := db.Model(&taskdomain.Task{}).Where("owner_id = ?", other.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count tasks: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 task for remaining user, got %d", count)
	}

	t.Run("deleting again yields not found", func(t *testing.T) {
		err := service.DeleteUser(ctx, user.ID)
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("DeleteUser() error = %v, want ErrUserNotFound", err)
		}
	})
}
