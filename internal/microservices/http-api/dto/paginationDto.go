package dto

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a limit/offset window over a listing
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset from the query string. Missing or
// malformed values fall back to the defaults; limit is capped at MaxLimit.
func ParsePage(q url.Values) Page {
	p := Page{Limit: DefaultLimit}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = min(v, MaxLimit)
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		p.Offset = v
	}
	return p
}

// Paginated is the list envelope of every collection endpoint
type Paginated[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPaginated wraps results and builds next/previous links from the request URL
func NewPaginated[T any](results []T, count int64, page Page, requestURL *url.URL) Paginated[T] {
	if results == nil {
		results = []T{}
	}
	resp := Paginated[T]{Count: count, Results: results}

	if int64(page.Offset+page.Limit) < count {
		next := pageURL(requestURL, page.Limit, page.Offset+page.Limit)
		resp.Next = &next
	}
	if page.Offset > 0 {
		prev := pageURL(requestURL, page.Limit, max(page.Offset-page.Limit, 0))
		resp.Previous = &prev
	}
	return resp
}

func pageURL(base *url.URL, limit, offset int) string {
	u := *base
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
