package ports

import (
	"context"
	"time"
)

// TokenDenylist : Redis слой для отозванных access токенов (по jti)
type TokenDenylist interface {
	Add(ctx context.Context, tokenID string, ttl time.Duration) error
	Contains(ctx context.Context, tokenID string) (bool, error)
}
