package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsnexus/news-api/internal/domain"
)

var commentRows = []string{
	"comment_id", "votes", "created_at", "author", "body", "article_id",
}

func TestPgCommentRepository_ListByArticle(t *testing.T) {
	t.Run("lists comments newest first", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments WHERE article_id = \$1`).
			WithArgs("1").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(11))
		mock.ExpectQuery(`SELECT comment_id, (.+) FROM comments WHERE article_id = \$1 ORDER BY "created_at" DESC LIMIT \$2 OFFSET \$3`).
			WithArgs("1", 10, 0).
			WillReturnRows(pgxmock.NewRows(commentRows).
				AddRow(2, 14, now, "butter_bridge", "The beautiful thing about treasure is that it exists.", 1).
				AddRow(3, 100, now.Add(-time.Hour), "icellusedkars", "Fruit pastilles", 1))

		comments, total, err := repo.ListByArticle(ctx, "1", ListQuery{Limit: 10, Page: 1})
		require.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, 11, total)
		assert.Equal(t, 2, comments[0].ID)
		assert.Equal(t, 1, comments[0].ArticleID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty page for article without comments", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments WHERE article_id = \$1`).
			WithArgs("2").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`FROM comments WHERE article_id = \$1`).
			WithArgs("2", 10, 0).
			WillReturnRows(pgxmock.NewRows(commentRows))

		comments, total, err := repo.ListByArticle(ctx, "2", ListQuery{Limit: 10, Page: 1})
		require.NoError(t, err)
		assert.Empty(t, comments)
		assert.Equal(t, 0, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns invalid input for non-numeric article id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments WHERE article_id = \$1`).
			WithArgs("banana").
			WillReturnError(&pgconn.PgError{Code: "22P02"})

		_, _, err = repo.ListByArticle(ctx, "banana", ListQuery{Limit: 10, Page: 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, "invalid data type", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sorts by requested column and direction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments WHERE article_id = \$1`).
			WithArgs("1").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`ORDER BY "votes" ASC`).
			WithArgs("1", 10, 0).
			WillReturnRows(pgxmock.NewRows(commentRows).
				AddRow(3, 1, now, "icellusedkars", "Fruit pastilles", 1).
				AddRow(2, 14, now.Add(-time.Hour), "butter_bridge", "The beautiful thing about treasure is that it exists.", 1))

		comments, total, err := repo.ListByArticle(ctx, "1", ListQuery{
			SortBy: "votes",
			Order:  domain.SortAscending,
			Limit:  10,
			Page:   1,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, comments, 2)
		assert.Equal(t, 1, comments[0].Votes)
		assert.Equal(t, 14, comments[1].Votes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sort column surfaces as bad request", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments WHERE article_id = \$1`).
			WithArgs("1").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`ORDER BY "bananas" DESC`).
			WithArgs("1", 10, 0).
			WillReturnError(&pgconn.PgError{Code: "42703"})

		_, _, err = repo.ListByArticle(ctx, "1", ListQuery{SortBy: "bananas", Limit: 10, Page: 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, "bad request", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second page uses offset", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments WHERE article_id = \$1`).
			WithArgs("1").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(11))
		mock.ExpectQuery(`LIMIT \$2 OFFSET \$3`).
			WithArgs("1", 5, 5).
			WillReturnRows(pgxmock.NewRows(commentRows))

		_, total, err := repo.ListByArticle(ctx, "1", ListQuery{Limit: 5, Page: 2})
		require.NoError(t, err)
		assert.Equal(t, 11, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgCommentRepository_Insert(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("inserts comment and returns it", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		now := time.Now().UTC()
		mock.ExpectQuery(`INSERT INTO comments`).
			WithArgs("1", strPtr("butter_bridge"), strPtr("Nice article!")).
			WillReturnRows(pgxmock.NewRows(commentRows).
				AddRow(19, 0, now, "butter_bridge", "Nice article!", 1))

		comment, err := repo.Insert(ctx, "1", NewComment{
			Author: strPtr("butter_bridge"),
			Body:   strPtr("Nice article!"),
		})
		require.NoError(t, err)
		assert.Equal(t, 19, comment.ID)
		assert.Equal(t, 0, comment.Votes)
		assert.Equal(t, "Nice article!", comment.Body)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing article surfaces as not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`INSERT INTO comments`).
			WithArgs("999", strPtr("butter_bridge"), strPtr("Nice article!")).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err = repo.Insert(ctx, "999", NewComment{
			Author: strPtr("butter_bridge"),
			Body:   strPtr("Nice article!"),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, "item not found", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing body surfaces as missing property", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`INSERT INTO comments`).
			WithArgs("1", strPtr("butter_bridge"), (*string)(nil)).
			WillReturnError(&pgconn.PgError{Code: "23502"})

		_, err = repo.Insert(ctx, "1", NewComment{
			Author: strPtr("butter_bridge"),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, "missing property", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgCommentRepository_IncrementVotes(t *testing.T) {
	t.Run("increments votes and returns updated comment", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		now := time.Now().UTC()
		mock.ExpectQuery(`UPDATE comments SET votes = votes \+ \$1 WHERE comment_id = \$2`).
			WithArgs(-1, "2").
			WillReturnRows(pgxmock.NewRows(commentRows).
				AddRow(2, 13, now, "butter_bridge", "The beautiful thing about treasure is that it exists.", 1))

		comment, err := repo.IncrementVotes(ctx, "2", -1)
		require.NoError(t, err)
		assert.Equal(t, 13, comment.Votes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing comment", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectQuery(`UPDATE comments SET votes = votes \+ \$1`).
			WithArgs(1, "999").
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.IncrementVotes(ctx, "999", 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, "comment not found", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgCommentRepository_Delete(t *testing.T) {
	t.Run("deletes existing comment", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectExec(`DELETE FROM comments WHERE comment_id = \$1`).
			WithArgs("2").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err = repo.Delete(ctx, "2")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectExec(`DELETE FROM comments WHERE comment_id = \$1`).
			WithArgs("999").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err = repo.Delete(ctx, "999")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns invalid input for non-numeric id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgCommentRepository(mock)
		ctx := context.Background()

		mock.ExpectExec(`DELETE FROM comments WHERE comment_id = \$1`).
			WithArgs("banana").
			WillReturnError(&pgconn.PgError{Code: "22P02"})

		err = repo.Delete(ctx, "banana")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
