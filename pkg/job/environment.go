package job

import (
	"context"

	"github.com/bornholm/hostscan/pkg/search"
	"github.com/bornholm/hostscan/pkg/sink"
)

// Environment holds everything a tick needs and that outlives it: the
// authenticated search client and sinks built at cold start.
type Environment struct {
	Query  string
	Limit  int
	Search search.Client
	Sinks  []sink.Sink
}

type BootstrapFunc func(ctx context.Context) (*Environment, error)
