package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/newsnexus/news-api/internal/domain"
	"github.com/newsnexus/news-api/internal/repository"
)

var validate = validator.New()

// listParams carries list query-string parameters in their raw string
// form for shape validation. `number` matches ^[0-9]+$ exactly, so signs,
// decimals, and non-numerics are all rejected.
type listParams struct {
	SortBy string
	Order  string `validate:"omitempty,oneof=asc desc"`
	Limit  string `validate:"omitempty,number"`
	Page   string `validate:"omitempty,number"`
	Author string
	Topic  string
}

// parseListParams validates list query parameters and converts them into
// a repository query. Defaults apply only when a parameter is absent: an
// explicit limit=0 stays zero and yields an empty page with a real total
// count.
func parseListParams(r *http.Request, defaultLimit int) (repository.ListQuery, error) {
	qs := r.URL.Query()
	p := listParams{
		SortBy: qs.Get("sort_by"),
		Order:  qs.Get("order"),
		Limit:  qs.Get("limit"),
		Page:   qs.Get("p"),
		Author: qs.Get("author"),
		Topic:  qs.Get("topic"),
	}

	if err := validate.Struct(&p); err != nil {
		return repository.ListQuery{}, domain.NewValidationError("bad request")
	}

	q := repository.ListQuery{
		SortBy: p.SortBy,
		Order:  domain.SortOrder(p.Order),
		Author: p.Author,
		Topic:  p.Topic,
		Limit:  defaultLimit,
		Page:   1,
	}

	if p.Limit != "" {
		n, err := strconv.Atoi(p.Limit)
		if err != nil {
			return repository.ListQuery{}, domain.NewValidationError("bad request")
		}
		q.Limit = n
	}
	if p.Page != "" {
		n, err := strconv.Atoi(p.Page)
		if err != nil {
			return repository.ListQuery{}, domain.NewValidationError("bad request")
		}
		q.Page = n
	}

	return q, nil
}
