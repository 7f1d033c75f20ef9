package fetch

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

type HTTPFetcher struct {
	client *http.Client
}

// Get implements fetch.Fetcher.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Response{
		StatusCode: res.StatusCode,
		Body:       res.Body,
	}, nil
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPFetcher{
		client: client,
	}
}

var _ Fetcher = &HTTPFetcher{}
