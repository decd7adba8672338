// Package repository provides data access interfaces and implementations
// for the news API service.
//
// # Overview
//
// This package defines repository interfaces and their PostgreSQL implementations
// following the repository pattern to abstract data persistence from business logic.
//
// # Repository Interfaces
//
// The package provides the following repository interfaces:
//
//   - ArticleRepository: Manages article persistence, listing, and voting
//   - CommentRepository: Manages comments attached to articles
//   - TopicRepository: Manages topic listing and existence checks
//   - UserRepository: Manages user lookup and existence checks
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use by multiple goroutines.
// The underlying pgxpool handles connection pooling and synchronization.
//
// # Error Handling
//
// All methods return domain-specific errors from the domain package.
// Wrap database errors with context using fmt.Errorf with %w verb.
// Common errors include:
//
//   - domain.ErrNotFound: Resource does not exist
//   - domain.ErrInvalidInput: Invalid parameters provided
//
// Identifier parameters are passed to PostgreSQL as-is: a non-numeric ID
// against an integer column raises invalid_text_representation (22P02),
// which normalizes to domain.ErrInvalidInput rather than being pre-checked
// in Go. Foreign key violations (23503) normalize to domain.ErrNotFound.
//
// # Transactions
//
// Use the DBTX interface to support both pool and transaction contexts.
// Pass transaction from database.DB.WithTransaction for atomic operations.
//
// # Usage Pattern
//
// Repositories are typically created at application startup and passed to handlers:
//
//	db, _ := database.New(ctx, cfg, logger)
//	articleRepo := repository.NewPgArticleRepository(db)
//	commentRepo := repository.NewPgCommentRepository(db)
//	topicRepo := repository.NewPgTopicRepository(db)
//	userRepo := repository.NewPgUserRepository(db)
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/newsnexus/news-api/internal/database"
	"github.com/newsnexus/news-api/internal/domain"
)

// DBTX is the database interface supporting both pool and transaction contexts.
// This allows repositories to work with both direct pool connections and transactions.
//
// # Constructor Pattern
//
// Repository implementations follow a constructor pattern that accepts DBTX:
//
//	type PgArticleRepository struct {
//	    db DBTX
//	}
//
//	func NewPgArticleRepository(db DBTX) *PgArticleRepository {
//	    return &PgArticleRepository{db: db}
//	}
//
// This design enables:
//   - Direct usage with a connection pool for standard operations
//   - Transaction support by passing a transaction (pgx.Tx) instead
//   - Easy testing with mock implementations of DBTX
type DBTX = database.DBTX

// Default page sizes applied by the HTTP layer when the parameters are absent.
const (
	// DefaultArticleLimit is the page size for article listings.
	DefaultArticleLimit = 9

	// DefaultCommentLimit is the page size for comment listings.
	DefaultCommentLimit = 10
)

// ListQuery specifies sorting, filtering, and pagination for list operations.
// The zero value of each field means "not specified".
type ListQuery struct {
	// SortBy is the column to sort by. Empty means created_at. The value is
	// identifier-quoted and interpolated; an unknown column surfaces as a
	// PostgreSQL undefined_column error, normalized to domain.ErrInvalidInput.
	SortBy string

	// Order is the sort direction. Empty means descending.
	Order domain.SortOrder

	// Author filters to items authored by this username.
	Author string

	// Topic filters to articles under this topic slug.
	Topic string

	// Limit is the page size. Negative values fall back to the default.
	Limit int

	// Page is the 1-based page number.
	Page int
}

// normalize clamps degenerate pagination values. The HTTP layer applies
// per-resource defaults for absent parameters; this is a safety net for
// direct repository callers.
func (q *ListQuery) normalize(defaultLimit int) {
	if q.Limit < 0 {
		q.Limit = defaultLimit
	}
	if q.Page < 1 {
		q.Page = 1
	}
}

// offset returns the row offset for the current page.
func (q *ListQuery) offset() int {
	return (q.Page - 1) * q.Limit
}

// orderSQL returns the SQL direction keyword for the query's order.
func (q *ListQuery) orderSQL() string {
	if q.Order == domain.SortAscending {
		return "ASC"
	}
	return "DESC"
}

// quoteIdent quotes a SQL identifier, escaping embedded double quotes.
// Quoting confines an attacker-supplied sort column to a single identifier;
// a column that does not exist raises undefined_column at the database.
func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// PostgreSQL error codes normalized into domain errors.
const (
	pgInvalidTextRepresentation = "22P02" // invalid_text_representation
	pgNotNullViolation          = "23502" // not_null_violation
	pgForeignKeyViolation       = "23503" // foreign_key_violation
	pgUndefinedColumn           = "42703" // undefined_column
)

// normalizePgError converts well-known PostgreSQL errors into domain errors.
// Returns the input error unchanged when no mapping applies.
func normalizePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgInvalidTextRepresentation:
		return domain.NewValidationError("invalid data type")
	case pgNotNullViolation:
		return domain.NewValidationError("missing property")
	case pgForeignKeyViolation:
		return domain.NewNotFoundError("item")
	case pgUndefinedColumn:
		return domain.NewValidationError("bad request")
	}

	return err
}

// wrapPgError normalizes a PostgreSQL error into a domain error, or wraps
// it with operation context when no mapping applies.
func wrapPgError(op string, err error) error {
	if norm := normalizePgError(err); norm != err {
		return norm
	}
	return fmt.Errorf("%s: %w", op, err)
}
