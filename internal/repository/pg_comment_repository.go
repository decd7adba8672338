package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/newsnexus/news-api/internal/domain"
)

// Compile-time interface verification.
var _ CommentRepository = (*PgCommentRepository)(nil)

// PgCommentRepository is a PostgreSQL implementation of CommentRepository.
type PgCommentRepository struct {
	db DBTX
}

// NewPgCommentRepository creates a new PostgreSQL comment repository.
func NewPgCommentRepository(db DBTX) *PgCommentRepository {
	return &PgCommentRepository{db: db}
}

// commentColumns is the select list shared by comment queries.
const commentColumns = `comment_id, votes, created_at, author, body, article_id`

// ListByArticle retrieves the comments on an article, sorted and paginated.
func (r *PgCommentRepository) ListByArticle(ctx context.Context, articleID string, q ListQuery) ([]*domain.Comment, int, error) {
	q.normalize(DefaultCommentLimit)

	// Count total comments on the article, ignoring pagination
	var totalCount int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM comments WHERE article_id = $1", articleID,
	).Scan(&totalCount)
	if err != nil {
		return nil, 0, wrapPgError("failed to count comments", err)
	}

	// The sort column is caller-supplied: quote it and let the database
	// reject unknown columns with undefined_column.
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}

	query := fmt.Sprintf(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE article_id = $1
		ORDER BY %s %s
		LIMIT $2 OFFSET $3`, quoteIdent(sortBy), q.orderSQL())

	rows, err := r.db.Query(ctx, query, articleID, q.Limit, q.offset())
	if err != nil {
		return nil, 0, wrapPgError("failed to list comments", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0, q.Limit)
	for rows.Next() {
		comment := &domain.Comment{}
		err := rows.Scan(
			&comment.ID, &comment.Votes, &comment.CreatedAt,
			&comment.Author, &comment.Body, &comment.ArticleID,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, wrapPgError("error iterating comments", err)
	}

	return comments, totalCount, nil
}

// Insert creates a new comment on an article.
func (r *PgCommentRepository) Insert(ctx context.Context, articleID string, comment NewComment) (*domain.Comment, error) {
	query := `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	created := &domain.Comment{}
	err := r.db.QueryRow(ctx, query, articleID, comment.Author, comment.Body).Scan(
		&created.ID, &created.Votes, &created.CreatedAt,
		&created.Author, &created.Body, &created.ArticleID,
	)
	if err != nil {
		return nil, wrapPgError("failed to insert comment", err)
	}

	return created, nil
}

// IncrementVotes atomically adjusts the comment's votes by delta.
func (r *PgCommentRepository) IncrementVotes(ctx context.Context, commentID string, delta int) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING ` + commentColumns

	comment := &domain.Comment{}
	err := r.db.QueryRow(ctx, query, delta, commentID).Scan(
		&comment.ID, &comment.Votes, &comment.CreatedAt,
		&comment.Author, &comment.Body, &comment.ArticleID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("comment")
		}
		return nil, wrapPgError("failed to update comment votes", err)
	}

	return comment, nil
}

// Delete removes a comment.
func (r *PgCommentRepository) Delete(ctx context.Context, commentID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE comment_id = $1", commentID)
	if err != nil {
		return wrapPgError("failed to delete comment", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("comment")
	}

	return nil
}
