package surf

import (
	"context"
	"os"

	"github.com/bornholm/hostscan/pkg/fetch"
	"github.com/enetx/g"
	"github.com/enetx/surf"
	"github.com/pkg/errors"
)

// Fetcher issues requests through a browser-impersonating client, for search
// hosts sitting behind bot protection.
type Fetcher struct {
}

// Get implements fetch.Fetcher.
func (f *Fetcher) Get(ctx context.Context, url string) (*fetch.Response, error) {
	client := f.getClient()

	resp := client.Get(g.String(url)).WithContext(ctx).Do()
	if resp.IsErr() {
		return nil, errors.WithStack(resp.Err())
	}

	res := resp.Ok()

	return &fetch.Response{
		StatusCode: int(res.StatusCode),
		Body:       res.Body.Reader,
	}, nil
}

func (f *Fetcher) getClient() *surf.Client {
	builder := surf.NewClient().
		Builder()

	if proxy := os.Getenv("HTTP_PROXY"); proxy != "" {
		builder = builder.Proxy(proxy)
	}

	builder = builder.Impersonate().RandomOS().Chrome().
		Session()

	return builder.Build()
}

func NewFetcher() *Fetcher {
	return &Fetcher{}
}

var _ fetch.Fetcher = &Fetcher{}
