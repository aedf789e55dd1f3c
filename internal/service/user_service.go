package service

import (
	"context"
	"course-platform-auth/config"
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/ports"
	"course-platform-auth/internal/security"
	"course-platform-auth/internal/util"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserService : административные операции над пользователями
type UserService struct {
	userRepository ports.UserRepository
	refreshStore   ports.RefreshTokenStore
}

func NewUserService(userRepository ports.UserRepository, refreshStore ports.RefreshTokenStore) *UserService {
	return &UserService{
		userRepository: userRepository,
		refreshStore:   refreshStore,
	}
}

func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}

	users, nextCursor, err := s.userRepository.ListUsers(ctx, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	return users, nextCursor, nil
}

// UpdateUser меняет имя, email или роль. Поля проверяются так же, как при регистрации.
func (s *UserService) UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	if update.Empty() {
		return nil, fmt.Errorf("%w: нет полей для обновления", model.ErrInvalidInput)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		update.Name = &name
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		update.Email = &email
	}
	if update.Role != nil && !update.Role.Valid() {
		return nil, fmt.Errorf("%w: неизвестная роль %q", model.ErrInvalidInput, *update.Role)
	}

	return s.userRepository.UpdateUser(ctx, id, update)
}

// DeleteUser удаляет пользователя и отзывает его refresh токен
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.refreshStore.Revoke(ctx, id); err != nil {
		return fmt.Errorf("[UserService] не удалось отозвать токен: %w", err)
	}

	return s.userRepository.DeleteUser(ctx, id)
}

// EnsureAdmin создает администратора из конфигурации, если его еще нет,
// или повышает роль существующего пользователя с тем же email
func (s *UserService) EnsureAdmin(ctx context.Context, cfg *config.AdminConfig) error {
	if cfg == nil || cfg.Email == "" {
		return nil
	}

	email := normalizeEmail(cfg.Email)
	if err := validateEmail(email); err != nil {
		return fmt.Errorf("[UserService] email администратора: %w", err)
	}

	existing, err := s.userRepository.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == model.RoleAdmin {
			return nil
		}
		role := model.RoleAdmin
		if _, err := s.userRepository.UpdateUser(ctx, existing.ID, model.UserUpdate{Role: &role}); err != nil {
			return fmt.Errorf("[UserService] не удалось назначить роль администратора: %w", err)
		}
		util.Logger().Info("пользователю назначена роль администратора", "user_id", existing.ID)
		return nil
	case !errors.Is(err, model.ErrNotFound):
		return fmt.Errorf("[UserService] ошибка поиска администратора: %w", err)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "Administrator"
	}
	if err := validatePassword(cfg.Password); err != nil {
		return fmt.Errorf("[UserService] пароль администратора: %w", err)
	}

	hash, err := security.HashPassword(cfg.Password)
	if err != nil {
		return util.LogError("[UserService] не удалось создать хэш пароля", err)
	}

	created, err := s.userRepository.CreateUser(ctx, &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("[UserService] не удалось создать администратора: %w", err)
	}

	util.Logger().Info("создан администратор", "user_id", created.ID, "email", created.Email)
	return nil
}
