package repository

import (
	"context"

	"github.com/newsnexus/news-api/internal/domain"
)

// CommentRepository handles comments attached to articles.
type CommentRepository interface {
	// ListByArticle retrieves the comments on an article, newest first,
	// paginated. Returns the page of comments and the total count of the
	// article's comments regardless of pagination. An article with no
	// comments yields an empty page; callers distinguish a missing
	// article with ArticleRepository.Exists.
	ListByArticle(ctx context.Context, articleID string, q ListQuery) ([]*domain.Comment, int, error)

	// Insert creates a new comment on an article and returns it with
	// generated fields populated. Nil fields insert as NULL; a NULL body
	// or author returns domain.ErrInvalidInput, and a missing article or
	// unknown author returns domain.ErrNotFound via the foreign key.
	Insert(ctx context.Context, articleID string, comment NewComment) (*domain.Comment, error)

	// IncrementVotes atomically adjusts the comment's votes by delta and
	// returns the updated comment.
	// Returns domain.ErrNotFound if no matching comment exists.
	IncrementVotes(ctx context.Context, commentID string, delta int) (*domain.Comment, error)

	// Delete removes a comment.
	// Returns domain.ErrNotFound if no matching comment exists.
	Delete(ctx context.Context, commentID string) error
}

// NewComment is the insert payload for a comment. Fields are pointers so
// that absent request properties insert as NULL and surface the database's
// not-null violation instead of a silent empty string.
type NewComment struct {
	Author *string
	Body   *string
}
