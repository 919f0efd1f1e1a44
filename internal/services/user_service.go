package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jobtrackr/jobtrackr/internal/auth"
	"github.com/jobtrackr/jobtrackr/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

// UserService handles accounts and the per-user settings that ride on them.
type UserService struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func NewUserService(db *gorm.DB, log *slog.Logger) *UserService {
	return &UserService{DB: db, Log: log}
}

func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	s.Log.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

// SetGhostThreshold persists the user's ghost-detection threshold. The caller
// re-runs the ghost check afterwards so auto-ghosted records that no longer
// clear the new threshold get reverted.
func (s *UserService) SetGhostThreshold(ctx context.Context, userID string, days int) error {
	return s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("ghost_threshold_days", days).Error
}

// DeleteAccount removes the user and everything they own. The deletes are not
// transactional with the user row; a partial failure leaves data behind and
// is surfaced, not rolled back.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Resume{}).Error; err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&models.User{}, "id = ?", userID).Error; err != nil {
		return err
	}
	s.Log.InfoContext(ctx, "account deleted", "user_id", userID)
	return nil
}
