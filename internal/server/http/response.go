package httpserver

import (
	"time"

	"github.com/newsnexus/news-api/internal/domain"
)

// Response types for JSON serialization. Payloads are wrapped by resource
// name: {article}, {articles, total_count}, {comment}, and so on.

type articleResponse struct {
	ArticleID int    `json:"article_id"`
	Title     string `json:"title"`
	// Body is omitted from list responses, which do not fetch it.
	Body      string    `json:"body,omitempty"`
	Votes     int       `json:"votes"`
	Topic     string    `json:"topic"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	// CommentCount is present on reads and creates but omitted from vote
	// update responses, which return the bare row.
	CommentCount *int `json:"comment_count,omitempty"`
}

type commentResponse struct {
	CommentID int       `json:"comment_id"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	ArticleID int       `json:"article_id"`
}

type topicResponse struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type userResponse struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type articleEnvelope struct {
	Article articleResponse `json:"article"`
}

type articlesEnvelope struct {
	Articles   []articleResponse `json:"articles"`
	TotalCount int               `json:"total_count"`
}

type commentEnvelope struct {
	Comment commentResponse `json:"comment"`
}

type commentsEnvelope struct {
	Comments   []commentResponse `json:"comments"`
	TotalCount int               `json:"total_count"`
}

type topicsEnvelope struct {
	Topics []topicResponse `json:"topics"`
}

type userEnvelope struct {
	User userResponse `json:"user"`
}

// Converter functions

func domainArticleToResponse(a *domain.Article, withCommentCount bool) articleResponse {
	resp := articleResponse{
		ArticleID: a.ID,
		Title:     a.Title,
		Body:      a.Body,
		Votes:     a.Votes,
		Topic:     a.Topic,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
	}
	if withCommentCount {
		count := a.CommentCount
		resp.CommentCount = &count
	}
	return resp
}

func domainCommentToResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		CommentID: c.ID,
		Votes:     c.Votes,
		CreatedAt: c.CreatedAt,
		Author:    c.Author,
		Body:      c.Body,
		ArticleID: c.ArticleID,
	}
}

func domainTopicToResponse(t *domain.Topic) topicResponse {
	return topicResponse{
		Slug:        t.Slug,
		Description: t.Description,
	}
}

func domainUserToResponse(u *domain.User) userResponse {
	return userResponse{
		Username:  u.Username,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
