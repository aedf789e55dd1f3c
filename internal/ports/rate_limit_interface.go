package ports

import (
	"course-platform-auth/internal/model"
	"context"
	"github.com/jmoiron/sqlx"
	"time"
)

// RateLimitRepository : SQL слой счетчиков попыток
type RateLimitRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Seed(ctx context.Context, exec sqlx.ExtContext, clientKey string, resetAt time.Time) error
	FindForUpdate(ctx context.Context, exec sqlx.ExtContext, clientKey string) (*model.RateLimit, error)
	Save(ctx context.Context, exec sqlx.ExtContext, record *model.RateLimit) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}
