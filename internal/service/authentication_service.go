package service

import (
	"context"
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/ports"
	"course-platform-auth/internal/security"
	"course-platform-auth/internal/util"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AuthenticationService struct {
	userRepository ports.UserRepository
	tokenCodec     ports.TokenCodec
	refreshStore   ports.RefreshTokenStore
	denylist       ports.TokenDenylist
	now            func() time.Time
}

// NewAuthenticationService : denylist может быть nil, тогда access токены живут до истечения срока
func NewAuthenticationService(
	userRepository ports.UserRepository,
	tokenCodec ports.TokenCodec,
	refreshStore ports.RefreshTokenStore,
	denylist ports.TokenDenylist,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		tokenCodec:     tokenCodec,
		refreshStore:   refreshStore,
		denylist:       denylist,
		now:            time.Now,
	}
}

// Login проверяет email и пароль и выдает новую пару токенов.
// Неизвестный email и неверный пароль неразличимы для клиента: оба дают model.ErrInvalidCredentials.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("[AuthService] ошибка поиска пользователя: %w", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Register создает пользователя с ролью USER и сразу выполняет вход.
// Роль от клиента не принимается.
func (s *AuthenticationService) Register(ctx context.Context, name, email, password string) (*model.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	_, err := s.userRepository.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, model.ErrEmailTaken
	case !errors.Is(err, model.ErrNotFound):
		return nil, fmt.Errorf("[AuthService] ошибка поиска пользователя: %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, util.LogError("[AuthService] не удалось создать хэш пароля", err)
	}

	created, err := s.userRepository.CreateUser(ctx, &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("[AuthService] ошибка создания пользователя: %w", err)
	}

	return s.issueTokens(ctx, created)
}

// Refresh обменивает действующий refresh токен на новую пару. Старый токен после этого недействителен.
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh токен отсутствует", model.ErrInvalidToken)
	}

	payload, err := security.VerifyKind(s.tokenCodec, refreshToken, model.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	valid, err := s.refreshStore.Validate(ctx, payload.Subject, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка проверки refresh токена: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: refresh токен отозван или истек", model.ErrInvalidToken)
	}

	user, err := s.userRepository.FindByID(ctx, payload.Subject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: пользователь удален", model.ErrInvalidToken)
		}
		return nil, fmt.Errorf("[AuthService] ошибка поиска пользователя: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout отзывает refresh токен и, если настроен denylist, текущий access токен.
// Невалидные токены пропускаются молча, возвращаются только ошибки хранилищ.
func (s *AuthenticationService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	var errs []error

	if refreshToken != "" {
		if payload, err := security.VerifyKind(s.tokenCodec, refreshToken, model.TokenKindRefresh); err == nil {
			if err := s.refreshStore.Revoke(ctx, payload.Subject); err != nil {
				errs = append(errs, fmt.Errorf("отзыв refresh токена: %w", err))
			}
		}
	}

	if s.denylist != nil && accessToken != "" {
		if payload, err := security.VerifyKind(s.tokenCodec, accessToken, model.TokenKindAccess); err == nil {
			ttl := payload.ExpiresAt.Sub(s.now())
			if err := s.denylist.Add(ctx, payload.ID, ttl); err != nil {
				errs = append(errs, fmt.Errorf("отзыв access токена: %w", err))
			}
		}
	}

	return errors.Join(errs...)
}

func (s *AuthenticationService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthenticationService) issueTokens(ctx context.Context, user *model.User) (*model.AuthResult, error) {
	accessToken, err := s.tokenCodec.SignAccess(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации access токена", err)
	}

	refreshToken, err := s.tokenCodec.SignRefresh(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации refresh токена", err)
	}

	expiresAt := s.now().Add(s.tokenCodec.RefreshTTL())
	if err := s.refreshStore.Store(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка сохранения refresh токена: %w", err)
	}

	return &model.AuthResult{
		User: user,
		Tokens: &model.TokensPair{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			RefreshExpiresAt: expiresAt,
		},
	}, nil
}
