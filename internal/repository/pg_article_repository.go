package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/newsnexus/news-api/internal/domain"
)

// Compile-time interface verification.
var _ ArticleRepository = (*PgArticleRepository)(nil)

// PgArticleRepository is a PostgreSQL implementation of ArticleRepository.
type PgArticleRepository struct {
	db DBTX
}

// NewPgArticleRepository creates a new PostgreSQL article repository.
func NewPgArticleRepository(db DBTX) *PgArticleRepository {
	return &PgArticleRepository{db: db}
}

// articleColumns is the select list shared by single-article queries.
const articleColumns = `articles.article_id, articles.title, articles.body,
		articles.votes, articles.topic, articles.author, articles.created_at`

// articleListColumns is the select list for listings, which leave out the
// body to keep list payloads lean.
const articleListColumns = `articles.article_id, articles.title,
		articles.votes, articles.topic, articles.author, articles.created_at`

// Get retrieves an article by ID, including its aggregate comment count.
func (r *PgArticleRepository) Get(ctx context.Context, articleID string) (*domain.Article, error) {
	query := `
		SELECT ` + articleColumns + `,
			COUNT(comments.comment_id)::INT AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		GROUP BY articles.article_id`

	article := &domain.Article{}
	err := r.db.QueryRow(ctx, query, articleID).Scan(
		&article.ID, &article.Title, &article.Body,
		&article.Votes, &article.Topic, &article.Author, &article.CreatedAt,
		&article.CommentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("article")
		}
		return nil, wrapPgError("failed to get article", err)
	}

	return article, nil
}

// List retrieves articles matching the query's filters, sorted and paginated.
// Listed articles carry no body; fetch a single article to read it.
func (r *PgArticleRepository) List(ctx context.Context, q ListQuery) ([]*domain.Article, int, error) {
	q.normalize(DefaultArticleLimit)

	// Build dynamic WHERE clause
	var conditions []string
	var args []interface{}
	argIndex := 1

	if q.Topic != "" {
		conditions = append(conditions, fmt.Sprintf("articles.topic = $%d", argIndex))
		args = append(args, q.Topic)
		argIndex++
	}

	if q.Author != "" {
		conditions = append(conditions, fmt.Sprintf("articles.author = $%d", argIndex))
		args = append(args, q.Author)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total matching records, ignoring pagination
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM articles %s", whereClause)
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, wrapPgError("failed to count articles", err)
	}

	// The sort column is caller-supplied: quote it and let the database
	// reject unknown columns with undefined_column.
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+articleListColumns+`,
			COUNT(comments.comment_id)::INT AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		%s
		GROUP BY articles.article_id
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		whereClause, quoteIdent(sortBy), q.orderSQL(), argIndex, argIndex+1)

	args = append(args, q.Limit, q.offset())

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, wrapPgError("failed to list articles", err)
	}
	defer rows.Close()

	articles := make([]*domain.Article, 0, q.Limit)
	for rows.Next() {
		article := &domain.Article{}
		err := rows.Scan(
			&article.ID, &article.Title,
			&article.Votes, &article.Topic, &article.Author, &article.CreatedAt,
			&article.CommentCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, wrapPgError("error iterating articles", err)
	}

	return articles, totalCount, nil
}

// Insert creates a new article and returns it with generated fields populated.
func (r *PgArticleRepository) Insert(ctx context.Context, article NewArticle) (*domain.Article, error) {
	query := `
		INSERT INTO articles (title, body, topic, author)
		VALUES ($1, $2, $3, $4)
		RETURNING article_id, title, body, votes, topic, author, created_at`

	created := &domain.Article{}
	err := r.db.QueryRow(ctx, query,
		article.Title, article.Body, article.Topic, article.Author,
	).Scan(
		&created.ID, &created.Title, &created.Body,
		&created.Votes, &created.Topic, &created.Author, &created.CreatedAt,
	)
	if err != nil {
		return nil, wrapPgError("failed to insert article", err)
	}

	// A brand new article has no comments yet.
	created.CommentCount = 0

	return created, nil
}

// IncrementVotes atomically adjusts the article's votes by delta.
func (r *PgArticleRepository) IncrementVotes(ctx context.Context, articleID string, delta int) (*domain.Article, error) {
	query := `
		UPDATE articles
		SET votes = votes + $1
		WHERE article_id = $2
		RETURNING article_id, title, body, votes, topic, author, created_at`

	article := &domain.Article{}
	err := r.db.QueryRow(ctx, query, delta, articleID).Scan(
		&article.ID, &article.Title, &article.Body,
		&article.Votes, &article.Topic, &article.Author, &article.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("article")
		}
		return nil, wrapPgError("failed to update article votes", err)
	}

	return article, nil
}

// Delete removes an article and, through the schema's cascade, its comments.
func (r *PgArticleRepository) Delete(ctx context.Context, articleID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM articles WHERE article_id = $1", articleID)
	if err != nil {
		return wrapPgError("failed to delete article", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("article")
	}

	return nil
}

// Exists reports whether an article with the given ID exists.
func (r *PgArticleRepository) Exists(ctx context.Context, articleID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", articleID,
	).Scan(&exists)
	if err != nil {
		return false, wrapPgError("failed to check article existence", err)
	}

	return exists, nil
}
