package search

import (
	"context"

	"github.com/pkg/errors"
)

var ErrMalformedResponse = errors.New("malformed search response")

type Client interface {
	Search(ctx context.Context, query string) (*Response, error)
}

// Result is a single host matched by a search.
type Result struct {
	Country string
	Data    string
}

// Response holds the matches returned by the search host. Total is the
// server-side match count and may exceed len(Matches).
type Response struct {
	Matches []Result
	Total   int
}

// Empty returns the response used when the search host could not be
// queried successfully.
func Empty() *Response {
	return &Response{
		Matches: []Result{},
		Total:   0,
	}
}
