package service

import (
	"context"
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// RateLimiter считает попытки клиента в фиксированном окне, которое начинается с первой попытки.
// Счетчик хранится в БД, поэтому лимит общий для всех экземпляров сервиса.
type RateLimiter struct {
	repo ports.RateLimitRepository
	now  func() time.Time
}

func NewRateLimiter(repo ports.RateLimitRepository) *RateLimiter {
	return &RateLimiter{repo: repo, now: time.Now}
}

func (l *RateLimiter) Check(ctx context.Context, clientKey string, limit int, window time.Duration) (*model.RateLimitResult, error) {
	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("%w: лимит и окно должны быть положительными", model.ErrInvalidInput)
	}

	now := l.now()
	if _, err := l.repo.DeleteExpired(ctx, now); err != nil {
		return nil, fmt.Errorf("[RateLimiter] ошибка очистки счетчиков: %w", err)
	}

	exec, rollback, commit, err := l.repo.BeginTX(ctx)
	if err != nil {
		return nil, fmt.Errorf("[RateLimiter] не удалось начать транзакцию: %w", err)
	}
	defer rollback()

	newResetAt := now.Add(window)
	record, err := l.lockRecord(ctx, exec, clientKey, newResetAt)
	if err != nil {
		return nil, err
	}

	result := &model.RateLimitResult{}
	switch {
	case record.Count == 0 || !record.ResetAt.After(now):
		record.Count = 1
		record.ResetAt = newResetAt
		result.Allowed = true
	case record.Count < limit:
		record.Count++
		result.Allowed = true
	}

	if result.Allowed {
		if err := l.repo.Save(ctx, exec, record); err != nil {
			return nil, err
		}
		result.Remaining = limit - record.Count
	}
	result.ResetAt = record.ResetAt

	if err := commit(); err != nil {
		return nil, fmt.Errorf("[RateLimiter] не удалось зафиксировать транзакцию: %w", err)
	}

	return result, nil
}

// lockRecord создает запись, если ее нет, и блокирует ее до конца транзакции.
// Параллельная очистка может удалить просроченную запись между вставкой и блокировкой,
// поэтому вставка повторяется один раз.
func (l *RateLimiter) lockRecord(ctx context.Context, exec sqlx.ExtContext, clientKey string, resetAt time.Time) (*model.RateLimit, error) {
	for attempt := 0; attempt < 2; attempt++ {
		if err := l.repo.Seed(ctx, exec, clientKey, resetAt); err != nil {
			return nil, err
		}
		record, err := l.repo.FindForUpdate(ctx, exec, clientKey)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
	}
	// ErrNotFound здесь означает сбой хранилища, а не отсутствие ресурса у клиента
	return nil, fmt.Errorf("[RateLimiter] счетчик %q исчез после вставки", clientKey)
}
