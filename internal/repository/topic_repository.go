package repository

import (
	"context"

	"github.com/newsnexus/news-api/internal/domain"
)

// TopicRepository handles topic listing and existence checks.
type TopicRepository interface {
	// List retrieves all topics.
	List(ctx context.Context) ([]*domain.Topic, error)

	// Exists reports whether a topic with the given slug exists.
	Exists(ctx context.Context, slug string) (bool, error)
}

// UserRepository handles user lookup and existence checks.
type UserRepository interface {
	// GetByUsername retrieves a user by username.
	// Returns domain.ErrNotFound if no matching user exists.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Exists reports whether a user with the given username exists.
	Exists(ctx context.Context, username string) (bool, error)
}
