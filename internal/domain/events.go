package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Event type constants for lifecycle events published to the event stream.
const (
	EventTypeArticleCreated = "article.created"
	EventTypeArticleDeleted = "article.deleted"
	EventTypeArticleVoted   = "article.voted"
	EventTypeCommentCreated = "comment.created"
	EventTypeCommentDeleted = "comment.deleted"
	EventTypeCommentVoted   = "comment.voted"
)

// Aggregate type constants.
const (
	AggregateTypeArticle = "article"
	AggregateTypeComment = "comment"
)

// Event is a lifecycle event emitted after a successful mutation.
type Event struct {
	EventID       string
	EventType     string
	AggregateID   string
	AggregateType string
	Payload       []byte
	OccurredAt    time.Time
}

// NewEvent creates a lifecycle event with a generated ID and the payload
// JSON-serialized.
func NewEvent(eventType, aggregateType string, aggregateID int, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		AggregateID:   strconv.Itoa(aggregateID),
		AggregateType: aggregateType,
		Payload:       payloadBytes,
		OccurredAt:    time.Now().UTC(),
	}, nil
}

// ArticleCreatedPayload is the payload for article.created events.
type ArticleCreatedPayload struct {
	ArticleID int    `json:"article_id"`
	Title     string `json:"title"`
	Topic     string `json:"topic"`
	Author    string `json:"author"`
}

// ArticleDeletedPayload is the payload for article.deleted events.
type ArticleDeletedPayload struct {
	ArticleID int `json:"article_id"`
}

// CommentCreatedPayload is the payload for comment.created events.
type CommentCreatedPayload struct {
	CommentID int    `json:"comment_id"`
	ArticleID int    `json:"article_id"`
	Author    string `json:"author"`
}

// CommentDeletedPayload is the payload for comment.deleted events.
type CommentDeletedPayload struct {
	CommentID int `json:"comment_id"`
}

// VotesUpdatedPayload is the payload for article.voted and comment.voted events.
type VotesUpdatedPayload struct {
	ID    int `json:"id"`
	Delta int `json:"delta"`
	Votes int `json:"votes"`
}
