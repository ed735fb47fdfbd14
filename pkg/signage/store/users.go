package store

import (
	"context"
	"errors"
	"time"

	"github.com/signcast/signcast/pkg/signage/models"
)

// ============================================
// USER OPERATIONS
// ============================================

func (s *GORMStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "username", username, models.ErrUserNotFound)
}

func (s *GORMStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

func (s *GORMStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return listAll[models.User](s.db, ctx)
}

func (s *GORMStore) CreateUser(ctx context.Context, user *models.User) (string, error) {
	user.CreatedAt = time.Now()
	return createWithID(s.db, ctx, user, func(u *models.User, id string) { u.ID = id }, user.ID, models.ErrDuplicateUser)
}

func (s *GORMStore) UpdateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("id = ?", user.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrUserNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Username", "Role", "TenantID", "Email", "DisplayName", "Enabled").
		Updates(user).Error
}

func (s *GORMStore) DeleteUser(ctx context.Context, username string) error {
	return deleteByField[models.User](s.db, ctx, "username", username, models.ErrUserNotFound)
}

func (s *GORMStore) UpdateLastLogin(ctx context.Context, username string, timestamp time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("last_login", timestamp)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *GORMStore) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Enabled {
		return nil, models.ErrUserDisabled
	}

	if err := models.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureAdminUser creates the initial platform admin if no user exists yet.
// Returns true if the user was created.
func (s *GORMStore) EnsureAdminUser(ctx context.Context, username, passwordHash string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         string(models.RoleAdmin),
		Enabled:      true,
	}
	if _, err := s.CreateUser(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}
