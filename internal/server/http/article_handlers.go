package httpserver

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/newsnexus/news-api/internal/domain"
	"github.com/newsnexus/news-api/internal/observability"
	"github.com/newsnexus/news-api/internal/repository"
)

// createArticleRequest is the JSON request body for creating an article.
// Fields are pointers so an absent key reaches the store as NULL and the
// not-null constraint reports the missing property.
type createArticleRequest struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Topic  *string `json:"topic"`
	Author *string `json:"author"`
}

// incVotesRequest is the JSON request body for vote updates. A missing
// inc_votes key is a zero delta, not an error.
type incVotesRequest struct {
	IncVotes *int `json:"inc_votes"`
}

// listArticles handles GET /api/articles.
//
// The filtered fetch, the topic existence check, and the author existence
// check are independent reads, so they run concurrently and the handler
// waits for all of them to settle. When more than one fails the first
// failure in the fixed order topic, author, fetch wins.
func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseListParams(r, repository.DefaultArticleLimit)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	var (
		wg        sync.WaitGroup
		topicErr  error
		authorErr error
		fetchErr  error
		articles  []*domain.Article
		total     int
	)

	if q.Topic != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			exists, err := s.topicRepo.Exists(ctx, q.Topic)
			if err != nil {
				topicErr = err
			} else if !exists {
				topicErr = domain.NewFilterNotFoundError("topic")
			}
		}()
	}

	if q.Author != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			exists, err := s.userRepo.Exists(ctx, q.Author)
			if err != nil {
				authorErr = err
			} else if !exists {
				authorErr = domain.NewFilterNotFoundError("author")
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		articles, total, fetchErr = s.articleRepo.List(ctx, q)
	}()

	wg.Wait()

	for _, err := range []error{topicErr, authorErr, fetchErr} {
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
	}

	resp := make([]articleResponse, len(articles))
	for i, a := range articles {
		resp[i] = domainArticleToResponse(a, true)
	}
	writeJSON(w, http.StatusOK, articlesEnvelope{Articles: resp, TotalCount: total})
}

// getArticle handles GET /api/articles/{articleID}.
func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")

	article, err := s.articleRepo.Get(r.Context(), articleID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, articleEnvelope{Article: domainArticleToResponse(article, true)})
}

// createArticle handles POST /api/articles.
func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createArticleRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	article, err := s.articleRepo.Insert(ctx, repository.NewArticle{
		Title:  req.Title,
		Body:   req.Body,
		Topic:  req.Topic,
		Author: req.Author,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.metrics.RecordArticleCreated()
	s.publishEvent(ctx, domain.EventTypeArticleCreated, domain.AggregateTypeArticle, article.ID,
		domain.ArticleCreatedPayload{
			ArticleID: article.ID,
			Title:     article.Title,
			Topic:     article.Topic,
			Author:    article.Author,
		})

	writeJSON(w, http.StatusCreated, articleEnvelope{Article: domainArticleToResponse(article, true)})
}

// updateArticleVotes handles PATCH /api/articles/{articleID}.
func (s *Server) updateArticleVotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	articleID := chi.URLParam(r, "articleID")

	var req incVotesRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	delta := 0
	if req.IncVotes != nil {
		delta = *req.IncVotes
	}

	article, err := s.articleRepo.IncrementVotes(ctx, articleID, delta)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.metrics.RecordVoteApplied("article")
	s.publishEvent(ctx, domain.EventTypeArticleVoted, domain.AggregateTypeArticle, article.ID,
		domain.VotesUpdatedPayload{
			ID:    article.ID,
			Delta: delta,
			Votes: article.Votes,
		})

	writeJSON(w, http.StatusOK, articleEnvelope{Article: domainArticleToResponse(article, false)})
}

// deleteArticle handles DELETE /api/articles/{articleID}.
func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	articleID := chi.URLParam(r, "articleID")

	if err := s.articleRepo.Delete(ctx, articleID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.metrics.RecordArticleDeleted()
	logger := observability.WithArticleContext(s.logger, articleID)
	logger.Debug().Msg("article deleted")
	if id, err := strconv.Atoi(articleID); err == nil {
		s.publishEvent(ctx, domain.EventTypeArticleDeleted, domain.AggregateTypeArticle, id,
			domain.ArticleDeletedPayload{ArticleID: id})
	}

	w.WriteHeader(http.StatusNoContent)
}
