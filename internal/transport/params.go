package transport

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/service"
)

const (
	defaultLimit  = 10
	defaultOffset = 0

	maxNameFilterLen = 100
	maxSizeFilterLen = 20
)

// PageQuery holds the pagination window parsed from query parameters
type PageQuery struct {
	Limit  int `validate:"gte=1,lte=100"`
	Offset int `validate:"gte=0"`
}

// parsePageQuery extracts limit/offset from the request. Absent parameters
// take their defaults; present but non-integer or out-of-range values are
// validation failures, never silently clamped.
func parsePageQuery(r *http.Request) (PageQuery, []middleware.ValidationError) {
	page := PageQuery{
		Limit:  defaultLimit,
		Offset: defaultOffset,
	}

	var errs []middleware.ValidationError

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: "limit", Message: "Value must be an integer"})
		} else {
			page.Limit = limit
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: "offset", Message: "Value must be an integer"})
		} else {
			page.Offset = offset
		}
	}

	if len(errs) > 0 {
		return page, errs
	}

	if err := middleware.ValidateStruct(page); err != nil {
		return page, middleware.FormatValidationErrors(err)
	}

	return page, nil
}

// Pagination is the wire form of page metadata. Adjacent offsets are
// serialized as strings, null when no page exists in that direction.
type Pagination struct {
	Next     *string `json:"next"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Previous *string `json:"previous"`
}

func toPagination(p service.Page) Pagination {
	return Pagination{
		Next:     p.Next,
		Limit:    p.Limit,
		Offset:   p.Offset,
		Previous: p.Previous,
	}
}

// CreatedResponse carries the identifier of a newly created document
type CreatedResponse struct {
	ID string `json:"id"`
}
