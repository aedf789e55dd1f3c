package service

import (
	"context"
	"course-platform-auth/internal/ports"
	"course-platform-auth/internal/util"
	"errors"
	"time"
)

// Janitor периодически удаляет истекшие refresh токены и счетчики попыток.
// Проверки в RefreshTokenStore и RateLimiter корректны и без него, он только не дает таблицам расти.
type Janitor struct {
	refreshStore ports.RefreshTokenStore
	rateLimits   ports.RateLimitRepository
	interval     time.Duration
	now          func() time.Time
}

func NewJanitor(refreshStore ports.RefreshTokenStore, rateLimits ports.RateLimitRepository, interval time.Duration) *Janitor {
	return &Janitor{
		refreshStore: refreshStore,
		rateLimits:   rateLimits,
		interval:     interval,
		now:          time.Now,
	}
}

// RunOnce выполняет одну очистку. Ошибка одной таблицы не мешает очистить другую.
func (j *Janitor) RunOnce(ctx context.Context) error {
	var errs []error

	tokens, err := j.refreshStore.PurgeExpired(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	limits, err := j.rateLimits.DeleteExpired(ctx, j.now())
	if err != nil {
		errs = append(errs, err)
	}

	if tokens > 0 || limits > 0 {
		util.Logger().Info("очистка истекших записей", "refresh_tokens", tokens, "rate_limits", limits)
	}

	return errors.Join(errs...)
}

// Run блокируется до отмены ctx
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil {
				util.Logger().Error("ошибка очистки истекших записей", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
