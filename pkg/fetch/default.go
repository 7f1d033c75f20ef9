package fetch

import (
	"net/http"
)

var defaultFetcher Fetcher = NewHTTPFetcher(http.DefaultClient)

func Default() Fetcher {
	return defaultFetcher
}
