package ports

import (
	"course-platform-auth/internal/model"
	"context"
	"time"
)

type AuthenticationService interface {
	Login(ctx context.Context, email, password string) (*model.AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*model.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error)
	Logout(ctx context.Context, refreshToken, accessToken string) error
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

// RateLimiter : счетчик попыток с фиксированным окном
type RateLimiter interface {
	Check(ctx context.Context, clientKey string, limit int, window time.Duration) (*model.RateLimitResult, error)
}
