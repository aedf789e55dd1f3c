package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsOrderedMigrations(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00001_create_users.sql",
		"00002_create_refresh_tokens.sql",
		"00003_create_rate_limits.sql",
	}, names)

	for _, name := range names {
		body, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestRefreshTokensMigration_UniquePerUser(t *testing.T) {
	body, err := fs.ReadFile(FS, "00002_create_refresh_tokens.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "UNIQUE INDEX IF NOT EXISTS refresh_tokens_user_id_key ON refresh_tokens (user_id)")
}

func TestUp_PropagatesGooseError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		gotDir = dir
		return errors.New("boom")
	}

	err := Up(context.Background(), nil)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, ".", gotDir)
}
