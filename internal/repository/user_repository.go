package repository

import (
	"context"
	"course-platform-auth/config"
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/util"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"strings"
	"time"
)

const userColumns = `id, name, email, password_hash, role, created_at`

// uniqueViolation : код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// CreateUser : сохраняет нового пользователя. Занятый email возвращается как model.ErrEmailTaken.
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (id, name, email, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + userColumns

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role).
		StructScan(createdUser)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrEmailTaken
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByID : ищет пользователя по id
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail : ищет пользователя по email (уже нормализованному)
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, r.DB, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// UpdateUser : меняет только переданные поля
func (r *UserRepository) UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	builder := NewUpdateBuilder("users")
	if update.Name != nil {
		builder.Set("name", *update.Name)
	}
	if update.Email != nil {
		builder.Set("email", *update.Email)
	}
	if update.Role != nil {
		builder.Set("role", string(*update.Role))
	}

	query, args, err := builder.
		Where("id", id).
		Returning(strings.Split(userColumns, ", ")...).
		Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}

	var user model.User
	err = r.DB.QueryRowxContext(ctx, query, args...).StructScan(&user)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, model.ErrNotFound
		case isUniqueViolation(err):
			return nil, model.ErrEmailTaken
		}
		return nil, util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}

	return &user, nil
}

// DeleteUser : удаляет пользователя по id, его refresh токен удаляется каскадно
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, удален ли пользователь", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

// ListUsers : вывод списка пользователей с cursor-based пагинацией.
// Курсор: created_at последнего пользователя страницы и его id через "|".
func (r *UserRepository) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE (created_at, id) > ($1, $2)
        ORDER BY created_at ASC, id ASC
        LIMIT $3
    `

	cursorTime, cursorID, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	var users []*model.User
	err = sqlx.SelectContext(ctx, r.DB, &users, query, cursorTime, cursorID, limit+1) // +1 для проверки наличия следующей страницы
	if err != nil {
		return nil, "", util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	var nextCursor string
	if len(users) > limit {
		users = users[:limit]
		last := users[len(users)-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
	}

	return users, nextCursor, nil
}

// минимальный UUID, меньше любого реального id
const zeroUUID = "00000000-0000-0000-0000-000000000000"

func encodeCursor(createdAt time.Time, id string) string {
	return createdAt.UTC().Format(time.RFC3339Nano) + "|" + id
}

func decodeCursor(cursor string) (time.Time, string, error) {
	if cursor == "" {
		return time.Time{}, zeroUUID, nil
	}

	rawTime, id, ok := strings.Cut(cursor, "|")
	if !ok || id == "" {
		return time.Time{}, "", fmt.Errorf("%w: неверный формат курсора", model.ErrInvalidInput)
	}

	cursorTime, err := time.Parse(time.RFC3339Nano, rawTime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: неверный формат курсора: %v", model.ErrInvalidInput, err)
	}

	return cursorTime, id, nil
}
