package repository

import (
	"context"
	"course-platform-auth/config"
	"course-platform-auth/internal/util"
	"fmt"
	"time"
)

// TokenDenylistRepository хранит jti отозванных access токенов до истечения их срока
type TokenDenylistRepository struct {
	client *config.RedisClient
}

func NewTokenDenylistRepository(rdb *config.RedisClient) *TokenDenylistRepository {
	return &TokenDenylistRepository{rdb}
}

func (r *TokenDenylistRepository) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil // токен уже истек сам
	}

	if err := r.client.Client.Set(ctx, r.key(tokenID), "1", ttl).Err(); err != nil {
		return util.LogError("ошибка сохранения отозванного токена в Redis", err)
	}
	return nil
}

func (r *TokenDenylistRepository) Contains(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, util.LogError("ошибка проверки токена в Redis", err)
	}
	return n > 0, nil
}

func (r *TokenDenylistRepository) key(tokenID string) string {
	return fmt.Sprintf("denylist:access:%s", tokenID)
}
