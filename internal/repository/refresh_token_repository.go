package repository

import (
	"context"
	"course-platform-auth/config"
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/util"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type RefreshTokenRepository struct {
	*config.Database
	now func() time.Time
}

func NewRefreshTokenRepository(database *config.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{Database: database, now: time.Now}
}

// Store : заменяет refresh токен пользователя новым.
// Удаление и вставка выполняются в одной транзакции, уникальный индекс по user_id
// не дает параллельным входам оставить две записи.
func (r *RefreshTokenRepository) Store(ctx context.Context, userID, token string, expiresAt time.Time) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось начать транзакцию", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось удалить старый токен", err)
	}

	query := `
	INSERT INTO refresh_tokens (user_id, token, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id) DO UPDATE
	SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at, created_at = now()
	`
	if _, err := tx.ExecContext(ctx, query, userID, token, expiresAt); err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось сохранить токен", err)
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось зафиксировать транзакцию", err)
	}

	return nil
}

// Validate : true, только если токен хранится у этого пользователя и не истек.
// Истекшая запись удаляется сразу.
func (r *RefreshTokenRepository) Validate(ctx context.Context, userID, token string) (bool, error) {
	if userID == "" || token == "" {
		return false, nil
	}

	var stored model.RefreshToken
	query := `SELECT user_id, token, expires_at, created_at FROM refresh_tokens WHERE token = $1`
	err := sqlx.GetContext(ctx, r.DB, &stored, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, util.LogError("[RefreshTokenRepo] не удалось проверить токен", err)
	}

	if stored.UserID != userID {
		return false, nil
	}

	if !stored.ExpiresAt.After(r.now()) {
		if _, err := r.DB.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token); err != nil {
			return false, util.LogError("[RefreshTokenRepo] не удалось удалить истекший токен", err)
		}
		return false, nil
	}

	return true, nil
}

// Revoke : удаляет токен пользователя, отсутствие записи не ошибка
func (r *RefreshTokenRepository) Revoke(ctx context.Context, userID string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось отозвать токен", err)
	}
	return nil
}

// PurgeExpired : удаляет все истекшие токены, возвращает число удаленных строк
func (r *RefreshTokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= $1`, r.now())
	if err != nil {
		return 0, util.LogError("[RefreshTokenRepo] не удалось удалить истекшие токены", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[RefreshTokenRepo] не удалось получить число удаленных токенов", err)
	}

	return deleted, nil
}
