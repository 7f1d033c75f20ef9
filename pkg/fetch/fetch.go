package fetch

import (
	"context"
	"io"
)

type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// Response is the raw outcome of a GET. Callers own Body and must close it,
// whatever the status code.
type Response struct {
	StatusCode int
	Body       io.ReadCloser
}
