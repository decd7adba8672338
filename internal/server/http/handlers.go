package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newsnexus/news-api/internal/domain"
	"github.com/newsnexus/news-api/internal/observability"
)

// maxRequestBodySize limits request bodies to 1 MB.
const maxRequestBodySize = 1 << 20

// endpointInfo describes one route for the discovery endpoint.
type endpointInfo struct {
	Description string   `json:"description"`
	Queries     []string `json:"queries,omitempty"`
}

type endpointsEnvelope struct {
	Endpoints map[string]endpointInfo `json:"endpoints"`
}

var apiEndpoints = map[string]endpointInfo{
	"GET /api": {
		Description: "serves a json representation of all the available endpoints of the api",
	},
	"GET /api/topics": {
		Description: "serves an array of all topics",
	},
	"GET /api/users/:username": {
		Description: "serves the user with the given username",
	},
	"GET /api/articles": {
		Description: "serves a paginated array of articles with comment counts",
		Queries:     []string{"sort_by", "order", "author", "topic", "limit", "p"},
	},
	"POST /api/articles": {
		Description: "creates a new article and serves it back",
	},
	"GET /api/articles/:article_id": {
		Description: "serves the article with the given id, including its comment count",
	},
	"PATCH /api/articles/:article_id": {
		Description: "applies a vote delta to the article and serves the updated row",
	},
	"DELETE /api/articles/:article_id": {
		Description: "deletes the article with the given id",
	},
	"GET /api/articles/:article_id/comments": {
		Description: "serves a paginated array of comments for the article",
		Queries:     []string{"sort_by", "order", "limit", "p"},
	},
	"POST /api/articles/:article_id/comments": {
		Description: "adds a comment to the article and serves it back",
	},
	"PATCH /api/comments/:comment_id": {
		Description: "applies a vote delta to the comment and serves the updated row",
	},
	"DELETE /api/comments/:comment_id": {
		Description: "deletes the comment with the given id",
	},
}

// getEndpoints handles GET /api.
func (s *Server) getEndpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, endpointsEnvelope{Endpoints: apiEndpoints})
}

// listTopics handles GET /api/topics.
func (s *Server) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.topicRepo.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := make([]topicResponse, len(topics))
	for i, t := range topics {
		resp[i] = domainTopicToResponse(t)
	}
	writeJSON(w, http.StatusOK, topicsEnvelope{Topics: resp})
}

// getUser handles GET /api/users/{username}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := s.userRepo.GetByUsername(r.Context(), username)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userEnvelope{User: domainUserToResponse(user)})
}

// writeDomainError maps domain errors to HTTP status codes and writes a
// {msg} JSON error response. Typed domain errors carry their client-facing
// message verbatim; anything else becomes a logged 500.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Msg)
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Msg)
	default:
		requestID := observability.RequestIDFromContext(r.Context())
		logger := observability.WithRequestContext(s.logger, requestID, r.Method, r.URL.Path)
		logger.Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

// decodeJSONBody reads and unmarshals a JSON request body into dst. An
// empty body is not an error: dst is left zero-valued so missing payloads
// fall through to per-route defaults. A JSON type mismatch maps to
// "invalid data type", any other malformation to "bad request".
func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		return domain.NewValidationError("bad request")
	}
	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.NewValidationError("invalid data type")
		}
		return domain.NewValidationError("bad request")
	}
	return nil
}

// publishEvent builds and publishes a lifecycle event, best-effort. A
// failed publish is logged and counted but never surfaces to the client.
func (s *Server) publishEvent(ctx context.Context, eventType, aggregateType string, aggregateID int, payload interface{}) {
	event, err := domain.NewEvent(eventType, aggregateType, aggregateID, payload)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to build lifecycle event")
		s.metrics.RecordEventFailed(eventType)
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		logger := observability.WithEventContext(s.logger, event.EventID, event.EventType)
		logger.Warn().Err(err).Msg("failed to publish lifecycle event")
		s.metrics.RecordEventFailed(eventType)
		return
	}

	s.metrics.RecordEventPublished(eventType)
}
