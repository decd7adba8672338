package repository

import (
	"context"

	"github.com/newsnexus/news-api/internal/domain"
)

// ArticleRepository handles article persistence, listing, and voting.
type ArticleRepository interface {
	// Get retrieves an article by ID, including its aggregate comment count.
	// Returns domain.ErrNotFound if no matching article exists.
	// Returns domain.ErrInvalidInput if the ID is not a valid integer.
	Get(ctx context.Context, articleID string) (*domain.Article, error)

	// List retrieves articles matching the query's filters, sorted and
	// paginated. Returns the page of articles and the total count of
	// matching articles regardless of pagination.
	// An unknown sort column returns domain.ErrInvalidInput.
	List(ctx context.Context, q ListQuery) ([]*domain.Article, int, error)

	// Insert creates a new article and returns it with generated fields
	// populated. Nil fields insert as NULL; a NULL in a required column
	// returns domain.ErrInvalidInput, and an unknown topic or author
	// returns domain.ErrNotFound.
	Insert(ctx context.Context, article NewArticle) (*domain.Article, error)

	// IncrementVotes atomically adjusts the article's votes by delta and
	// returns the updated article. The adjustment is a single UPDATE so
	// concurrent deltas serialize at the row without lost updates.
	// Returns domain.ErrNotFound if no matching article exists.
	IncrementVotes(ctx context.Context, articleID string, delta int) (*domain.Article, error)

	// Delete removes an article. Its comments are removed by the schema's
	// ON DELETE CASCADE. Returns domain.ErrNotFound if no matching
	// article exists.
	Delete(ctx context.Context, articleID string) error

	// Exists reports whether an article with the given ID exists.
	Exists(ctx context.Context, articleID string) (bool, error)
}

// NewArticle is the insert payload for an article. Fields are pointers so
// that absent request properties insert as NULL and surface the database's
// not-null violation instead of a silent empty string.
type NewArticle struct {
	Title  *string
	Body   *string
	Topic  *string
	Author *string
}
