package ghapi

import (
	"net/url"
	"strconv"
	"time"
)

// QueryParams holds the common list and search options GitHub accepts.
type QueryParams struct {
	Page    int
	PerPage int
	// Query is the search expression sent as q.
	Query string
	Sort  string
	// Order is "asc" or "desc"; GitHub ignores it without Sort.
	Order   string
	Filters map[string]string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{Filters: make(map[string]string)}
}

// WithPage sets the 1-based page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithPerPage sets the page size.
func (q *QueryParams) WithPerPage(perPage int) *QueryParams {
	q.PerPage = perPage

	return q
}

// WithQuery sets the search expression.
func (q *QueryParams) WithQuery(query string) *QueryParams {
	q.Query = query

	return q
}

// WithSort sets the sort field and direction.
func (q *QueryParams) WithSort(sort, order string) *QueryParams {
	q.Sort = sort
	q.Order = order

	return q
}

// WithFilter sets an endpoint-specific parameter such as sha, author or state.
// A later call for the same key replaces the value.
func (q *QueryParams) WithFilter(key, value string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}

	q.Filters[key] = value

	return q
}

// WithSince filters by a lower time bound, formatted as RFC 3339.
func (q *QueryParams) WithSince(t time.Time) *QueryParams {
	return q.WithFilter("since", t.UTC().Format(time.RFC3339))
}

// WithUntil filters by an upper time bound, formatted as RFC 3339.
func (q *QueryParams) WithUntil(t time.Time) *QueryParams {
	return q.WithFilter("until", t.UTC().Format(time.RFC3339))
}

// Clone returns an independent copy.
func (q *QueryParams) Clone() *QueryParams {
	if q == nil {
		return NewQueryParams()
	}

	cp := *q
	cp.Filters = make(map[string]string, len(q.Filters))

	for k, v := range q.Filters {
		cp.Filters[k] = v
	}

	return &cp
}

// ToValues converts the parameters to url.Values, omitting zero values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}

	if q.Query != "" {
		values.Set("q", q.Query)
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}

	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}

	if q.Order != "" {
		values.Set("order", q.Order)
	}

	for key, value := range q.Filters {
		if value != "" {
			values.Set(key, value)
		}
	}

	return values
}
