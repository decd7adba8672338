package repository

import (
	"context"

	"github.com/newsnexus/news-api/internal/domain"
)

// Compile-time interface verification.
var _ TopicRepository = (*PgTopicRepository)(nil)

// PgTopicRepository is a PostgreSQL implementation of TopicRepository.
type PgTopicRepository struct {
	db DBTX
}

// NewPgTopicRepository creates a new PostgreSQL topic repository.
func NewPgTopicRepository(db DBTX) *PgTopicRepository {
	return &PgTopicRepository{db: db}
}

// List retrieves all topics.
func (r *PgTopicRepository) List(ctx context.Context) ([]*domain.Topic, error) {
	rows, err := r.db.Query(ctx, "SELECT slug, description FROM topics")
	if err != nil {
		return nil, wrapPgError("failed to list topics", err)
	}
	defer rows.Close()

	topics := make([]*domain.Topic, 0)
	for rows.Next() {
		topic := &domain.Topic{}
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return nil, wrapPgError("failed to scan topic", err)
		}
		topics = append(topics, topic)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapPgError("error iterating topics", err)
	}

	return topics, nil
}

// Exists reports whether a topic with the given slug exists.
func (r *PgTopicRepository) Exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)", slug,
	).Scan(&exists)
	if err != nil {
		return false, wrapPgError("failed to check topic existence", err)
	}

	return exists, nil
}
