package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/newsnexus/news-api/internal/domain"
)

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"created_at", `"created_at"`},
		{"votes", `"votes"`},
		{"comment_count", `"comment_count"`},
		{`weird"name`, `"weird""name"`},
		{`a; DROP TABLE articles; --`, `"a; DROP TABLE articles; --"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, quoteIdent(tt.input))
		})
	}
}

func TestNormalizePgError(t *testing.T) {
	t.Run("invalid text representation becomes invalid data type", func(t *testing.T) {
		err := normalizePgError(&pgconn.PgError{Code: "22P02"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, "invalid data type", err.Error())
	})

	t.Run("not null violation becomes missing property", func(t *testing.T) {
		err := normalizePgError(&pgconn.PgError{Code: "23502"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, "missing property", err.Error())
	})

	t.Run("foreign key violation becomes item not found", func(t *testing.T) {
		err := normalizePgError(&pgconn.PgError{Code: "23503"})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, "item not found", err.Error())
	})

	t.Run("undefined column becomes bad request", func(t *testing.T) {
		err := normalizePgError(&pgconn.PgError{Code: "42703"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, "bad request", err.Error())
	})

	t.Run("unmapped codes pass through", func(t *testing.T) {
		in := &pgconn.PgError{Code: "23505"}
		assert.Equal(t, error(in), normalizePgError(in))
	})

	t.Run("non-postgres errors pass through", func(t *testing.T) {
		in := errors.New("boom")
		assert.Equal(t, in, normalizePgError(in))
	})
}

func TestListQuery_Normalize(t *testing.T) {
	t.Run("negative limit falls back to default", func(t *testing.T) {
		q := ListQuery{Limit: -1}
		q.normalize(DefaultArticleLimit)
		assert.Equal(t, 9, q.Limit)
		assert.Equal(t, 1, q.Page)
	})

	t.Run("explicit zero limit is preserved", func(t *testing.T) {
		q := ListQuery{Limit: 0, Page: 1}
		q.normalize(DefaultArticleLimit)
		assert.Equal(t, 0, q.Limit)
	})

	t.Run("valid values are untouched", func(t *testing.T) {
		q := ListQuery{Limit: 5, Page: 3}
		q.normalize(DefaultCommentLimit)
		assert.Equal(t, 5, q.Limit)
		assert.Equal(t, 3, q.Page)
	})
}

func TestListQuery_Offset(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		page     int
		expected int
	}{
		{"first page", 9, 1, 0},
		{"second page", 9, 2, 9},
		{"third page of ten", 10, 3, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ListQuery{Limit: tt.limit, Page: tt.page}
			assert.Equal(t, tt.expected, q.offset())
		})
	}
}

func TestListQuery_OrderSQL(t *testing.T) {
	assert.Equal(t, "ASC", (&ListQuery{Order: domain.SortAscending}).orderSQL())
	assert.Equal(t, "DESC", (&ListQuery{Order: domain.SortDescending}).orderSQL())
	assert.Equal(t, "DESC", (&ListQuery{}).orderSQL())
}
