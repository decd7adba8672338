// Package domain provides domain models and errors for the news API service.
package domain

import "time"

// Article is a news article posted by a user under a topic.
type Article struct {
	ID        int
	Title     string
	Body      string
	Votes     int
	Topic     string
	Author    string
	CreatedAt time.Time

	// CommentCount is the aggregate number of comments on the article.
	// It is derived by the query layer, never stored.
	CommentCount int
}

// Comment is a user comment attached to an article.
type Comment struct {
	ID        int
	Author    string
	ArticleID int
	Votes     int
	Body      string
	CreatedAt time.Time
}

// Topic groups articles under a unique slug.
type Topic struct {
	Slug        string
	Description string
}

// User is a registered author of articles and comments.
type User struct {
	Username  string
	Name      string
	AvatarURL string
}

// SortOrder is a sort direction accepted by list queries.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// IsValid reports whether the order is one of the two accepted literals.
// Matching is case-sensitive; anything else is a bad request.
func (o SortOrder) IsValid() bool {
	return o == SortAscending || o == SortDescending
}
