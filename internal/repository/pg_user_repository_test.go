package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsnexus/news-api/internal/domain"
)

func TestPgUserRepository_GetByUsername(t *testing.T) {
	t.Run("returns user when found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT username, name, avatar_url FROM users WHERE username = \$1`).
			WithArgs("butter_bridge").
			WillReturnRows(pgxmock.NewRows([]string{"username", "name", "avatar_url"}).
				AddRow("butter_bridge", "jonny", "https://example.com/avatar.jpg"))

		user, err := repo.GetByUsername(ctx, "butter_bridge")
		require.NoError(t, err)
		assert.Equal(t, "butter_bridge", user.Username)
		assert.Equal(t, "jonny", user.Name)
		assert.Equal(t, "https://example.com/avatar.jpg", user.AvatarURL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT username, name, avatar_url FROM users WHERE username = \$1`).
			WithArgs("nobody").
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.GetByUsername(ctx, "nobody")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, "user not found", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgUserRepository_Exists(t *testing.T) {
	t.Run("returns true for existing user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE username = \$1\)`).
			WithArgs("butter_bridge").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.Exists(ctx, "butter_bridge")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false for missing user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE username = \$1\)`).
			WithArgs("nobody").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.Exists(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
