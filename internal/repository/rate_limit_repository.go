package repository

import (
	"context"
	"course-platform-auth/config"
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/util"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"time"
)

type RateLimitRepository struct {
	*config.Database
}

func NewRateLimitRepository(database *config.Database) *RateLimitRepository {
	return &RateLimitRepository{database}
}

// DeleteExpired : удаляет счетчики, окно которых закончилось
func (r *RateLimitRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM rate_limits WHERE reset_at <= $1`, now)
	if err != nil {
		return 0, util.LogError("[RateLimitRepo] не удалось удалить истекшие счетчики", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[RateLimitRepo] не удалось получить число удаленных счетчиков", err)
	}

	return deleted, nil
}

// Seed : создает пустой счетчик, если его еще нет, чтобы FindForUpdate всегда находил строку
func (r *RateLimitRepository) Seed(ctx context.Context, exec sqlx.ExtContext, clientKey string, resetAt time.Time) error {
	query := `
	INSERT INTO rate_limits (client_key, count, reset_at)
	VALUES ($1, 0, $2)
	ON CONFLICT (client_key) DO NOTHING
	`
	if _, err := exec.ExecContext(ctx, query, clientKey, resetAt); err != nil {
		return util.LogError("[RateLimitRepo] не удалось создать счетчик", err)
	}
	return nil
}

// FindForUpdate : читает счетчик с блокировкой строки до конца транзакции
func (r *RateLimitRepository) FindForUpdate(ctx context.Context, exec sqlx.ExtContext, clientKey string) (*model.RateLimit, error) {
	query := `SELECT client_key, count, reset_at FROM rate_limits WHERE client_key = $1 FOR UPDATE`

	var record model.RateLimit
	err := sqlx.GetContext(ctx, exec, &record, query, clientKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[RateLimitRepo] не удалось прочитать счетчик", err)
	}

	return &record, nil
}

func (r *RateLimitRepository) Save(ctx context.Context, exec sqlx.ExtContext, record *model.RateLimit) error {
	query := `UPDATE rate_limits SET count = $2, reset_at = $3 WHERE client_key = $1`
	if _, err := exec.ExecContext(ctx, query, record.ClientKey, record.Count, record.ResetAt); err != nil {
		return util.LogError("[RateLimitRepo] не удалось сохранить счетчик", err)
	}
	return nil
}

// BeginTX : возвращает транзакцию и функции для ее отката и фиксации
func (r *RateLimitRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
