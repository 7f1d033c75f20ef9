package shodan

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bornholm/hostscan/pkg/fetch"
	"github.com/bornholm/hostscan/pkg/search"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "https://api.shodan.io/shodan"

// Client implements the search.Client interface against the host search
// endpoint. It never retries and sets no timeout of its own: a stalled host
// stalls the tick until the context is done.
type Client struct {
	baseURL string
	apiKey  string
	fetcher fetch.Fetcher
}

// Search implements search.Client.
//
// Non-200 statuses and transport failures yield an empty response instead of
// an error. Only an unparseable 200 body is reported, as search.ErrMalformedResponse.
func (c *Client) Search(ctx context.Context, query string) (*search.Response, error) {
	searchURL, err := c.searchURL(query)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "executing search", slog.String("query", query))

	res, err := c.fetcher.Get(ctx, searchURL)
	if err != nil {
		slog.WarnContext(ctx, "search request failed, ignoring", slog.Any("error", errors.WithStack(err)))
		return search.Empty(), nil
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "unexpected search response status, ignoring", slog.Int("status", res.StatusCode))
		return search.Empty(), nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		slog.WarnContext(ctx, "could not read search response, ignoring", slog.Any("error", errors.WithStack(err)))
		return search.Empty(), nil
	}

	return parseResponse(body)
}

func (c *Client) searchURL(query string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid search base url '%s'", c.baseURL)
	}

	u = u.JoinPath("host", "search")

	values := u.Query()
	values.Set("key", c.apiKey)
	values.Set("query", query)
	u.RawQuery = values.Encode()

	return u.String(), nil
}

func parseResponse(body []byte) (*search.Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Wrap(search.ErrMalformedResponse, "invalid json body")
	}

	root := gjson.ParseBytes(body)

	matches := root.Get("matches")
	if !matches.Exists() || !matches.IsArray() {
		return nil, errors.Wrap(search.ErrMalformedResponse, "missing 'matches' array")
	}

	total := root.Get("total")
	if !total.Exists() || total.Type != gjson.Number {
		return nil, errors.Wrap(search.ErrMalformedResponse, "missing 'total' count")
	}

	results := make([]search.Result, 0, len(matches.Array()))
	for _, m := range matches.Array() {
		results = append(results, search.Result{
			Country: m.Get("location.country_name").String(),
			Data:    m.Get("data").String(),
		})
	}

	count := int(total.Int())
	if count < len(results) {
		count = len(results)
	}

	return &search.Response{
		Matches: results,
		Total:   count,
	}, nil
}

type OptionFunc func(*Client)

// WithBaseURL overrides the search host, e.g. to target a proxy.
func WithBaseURL(baseURL string) OptionFunc {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithFetcher sets the transport used to issue the search request.
func WithFetcher(fetcher fetch.Fetcher) OptionFunc {
	return func(c *Client) {
		c.fetcher = fetcher
	}
}

// NewClient creates a new host search client using the given API key.
func NewClient(apiKey string, funcs ...OptionFunc) *Client {
	client := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		fetcher: fetch.Default(),
	}

	for _, fn := range funcs {
		fn(client)
	}

	return client
}

var _ search.Client = &Client{}
