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

// createCommentRequest is the JSON request body for adding a comment.
// Pointer fields let an absent key surface as a missing property from the
// store instead of an empty string.
type createCommentRequest struct {
	Username *string `json:"username"`
	Body     *string `json:"body"`
}

// listArticleComments handles GET /api/articles/{articleID}/comments.
//
// The article existence check and the paginated fetch run concurrently;
// both settle before a result is chosen, and the existence failure wins.
func (s *Server) listArticleComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	articleID := chi.URLParam(r, "articleID")

	q, err := parseListParams(r, repository.DefaultCommentLimit)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	var (
		wg         sync.WaitGroup
		articleErr error
		fetchErr   error
		comments   []*domain.Comment
		total      int
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		exists, err := s.articleRepo.Exists(ctx, articleID)
		if err != nil {
			articleErr = err
		} else if !exists {
			articleErr = domain.NewNotFoundError("article")
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		comments, total, fetchErr = s.commentRepo.ListByArticle(ctx, articleID, q)
	}()

	wg.Wait()

	for _, err := range []error{articleErr, fetchErr} {
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
	}

	resp := make([]commentResponse, len(comments))
	for i, c := range comments {
		resp[i] = domainCommentToResponse(c)
	}
	writeJSON(w, http.StatusOK, commentsEnvelope{Comments: resp, TotalCount: total})
}

// createComment handles POST /api/articles/{articleID}/comments.
// Article existence is not pre-checked: the foreign key constraint
// reports an absent article, normalized to a 404.
func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	articleID := chi.URLParam(r, "articleID")

	var req createCommentRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	comment, err := s.commentRepo.Insert(ctx, articleID, repository.NewComment{
		Author: req.Username,
		Body:   req.Body,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.metrics.RecordCommentCreated()
	s.publishEvent(ctx, domain.EventTypeCommentCreated, domain.AggregateTypeComment, comment.ID,
		domain.CommentCreatedPayload{
			CommentID: comment.ID,
			ArticleID: comment.ArticleID,
			Author:    comment.Author,
		})

	writeJSON(w, http.StatusCreated, commentEnvelope{Comment: domainCommentToResponse(comment)})
}

// updateCommentVotes handles PATCH /api/comments/{commentID}.
func (s *Server) updateCommentVotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	commentID := chi.URLParam(r, "commentID")

	var req incVotesRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	delta := 0
	if req.IncVotes != nil {
		delta = *req.IncVotes
	}

	comment, err := s.commentRepo.IncrementVotes(ctx, commentID, delta)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.metrics.RecordVoteApplied("comment")
	s.publishEvent(ctx, domain.EventTypeCommentVoted, domain.AggregateTypeComment, comment.ID,
		domain.VotesUpdatedPayload{
			ID:    comment.ID,
			Delta: delta,
			Votes: comment.Votes,
		})

	writeJSON(w, http.StatusOK, commentEnvelope{Comment: domainCommentToResponse(comment)})
}

// deleteComment handles DELETE /api/comments/{commentID}.
func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	commentID := chi.URLParam(r, "commentID")

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.metrics.RecordCommentDeleted()
	logger := observability.WithCommentContext(s.logger, commentID)
	logger.Debug().Msg("comment deleted")
	if id, err := strconv.Atoi(commentID); err == nil {
		s.publishEvent(ctx, domain.EventTypeCommentDeleted, domain.AggregateTypeComment, id,
			domain.CommentDeletedPayload{CommentID: id})
	}

	w.WriteHeader(http.StatusNoContent)
}
