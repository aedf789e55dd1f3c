package config

import (
	"context"
	"course-platform-auth/internal/migrations"
	"course-platform-auth/internal/util"
	"fmt"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Database struct {
	*sqlx.DB
}

func NewDatabaseConnection(dbDriver string, dbConnectionStr string) (*Database, error) {
	database, err := sqlx.Connect(dbDriver, dbConnectionStr)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка пинга БД: %w", err)
	}

	util.Logger().Info("подключение к БД успешно выполнено")
	return &Database{
		database,
	}, nil
}

// Migrate применяет встроенные миграции схемы
func (db *Database) Migrate(ctx context.Context) error {
	if err := migrations.Up(ctx, db.DB.DB); err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}
	return nil
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}
