package ports

import (
	"course-platform-auth/internal/model"
	"context"
	"time"
)

// TokenCodec подписывает и проверяет access/refresh токены
type TokenCodec interface {
	SignAccess(subject, email string, role model.Role) (string, error)
	SignRefresh(subject, email string, role model.Role) (string, error)
	Verify(token string) (*model.TokenPayload, error)
	RefreshTTL() time.Duration
}

// RefreshTokenStore : хранилище единственного действующего refresh токена пользователя
type RefreshTokenStore interface {
	Store(ctx context.Context, userID, token string, expiresAt time.Time) error
	Validate(ctx context.Context, userID, token string) (bool, error)
	Revoke(ctx context.Context, userID string) error
	PurgeExpired(ctx context.Context) (int64, error)
}
