package job

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bornholm/hostscan/internal/logx"
	"github.com/bornholm/hostscan/pkg/format"
	"github.com/bornholm/hostscan/pkg/sink"
	"github.com/pkg/errors"
)

// Report summarizes a completed tick.
type Report struct {
	Invocation Invocation `yaml:"invocation"`
	Query      string     `yaml:"query"`
	Retrieved  int        `yaml:"retrieved"`
	Total      int        `yaml:"total"`
	Lines      []string   `yaml:"lines"`
}

// Runner runs ticks against an environment built once per process.
type Runner struct {
	bootstrap BootstrapFunc

	once sync.Once
	env  *Environment
	err  error
}

// Environment runs the cold start on first call and returns its memoized
// outcome afterwards, failure included.
func (r *Runner) Environment(ctx context.Context) (*Environment, error) {
	r.once.Do(func() {
		r.env, r.err = r.bootstrap(ctx)
	})

	if r.err != nil {
		return nil, errors.WithStack(r.err)
	}

	return r.env, nil
}

// Handle runs a single tick.
func (r *Runner) Handle(ctx context.Context, event Event, invocation Invocation) (*Report, error) {
	ctx = logx.WithAttrs(ctx, slog.String("invocation", invocation.ID))

	slog.DebugContext(ctx, "tick", slog.String("event", string(event)), slog.Any("context", invocation))

	env, err := r.Environment(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cold start failed")
	}

	return Tick(ctx, env, invocation)
}

// Tick fetches the search results, keeps the first env.Limit of them and
// writes them to every sink, in order. A failing sink aborts the tick.
func Tick(ctx context.Context, env *Environment, invocation Invocation) (*Report, error) {
	res, err := env.Search.Search(ctx, env.Query)
	if err != nil {
		return nil, errors.Wrap(err, "search failed")
	}

	lines := format.Project(res.Matches, env.Limit)

	batch := sink.Batch{
		Lines:     lines,
		Retrieved: len(res.Matches),
		Total:     res.Total,
	}

	report := &Report{
		Invocation: invocation,
		Query:      env.Query,
		Retrieved:  batch.Retrieved,
		Total:      batch.Total,
		Lines:      lines,
	}

	for _, s := range env.Sinks {
		if err := s.Write(ctx, batch); err != nil {
			return report, errors.Wrap(err, "could not write results")
		}
	}

	return report, nil
}

func NewRunner(bootstrap BootstrapFunc) *Runner {
	return &Runner{
		bootstrap: bootstrap,
	}
}
