package job

import (
	"context"
	"log/slog"

	"github.com/bornholm/hostscan/internal/config"
	"github.com/bornholm/hostscan/pkg/fetch"
	"github.com/bornholm/hostscan/pkg/fetch/surf"
	"github.com/bornholm/hostscan/pkg/search/shodan"
	"github.com/bornholm/hostscan/pkg/secret"
	"github.com/bornholm/hostscan/pkg/sink"
	"github.com/bornholm/hostscan/pkg/sink/logsink"
	"github.com/bornholm/hostscan/pkg/sink/sheets"
	"github.com/pkg/errors"
)

type OpenerFactory func(ctx context.Context, credentialsJSON []byte) (sheets.Opener, error)

type BootstrapOptions struct {
	Fetcher       fetch.Fetcher
	OpenerFactory OpenerFactory
	Logger        *slog.Logger
}

type BootstrapOptionFunc func(*BootstrapOptions)

// WithFetcher forces the transport used by the search client.
func WithFetcher(fetcher fetch.Fetcher) BootstrapOptionFunc {
	return func(opts *BootstrapOptions) {
		opts.Fetcher = fetcher
	}
}

// WithOpenerFactory sets how the spreadsheet sink is authenticated.
func WithOpenerFactory(factory OpenerFactory) BootstrapOptionFunc {
	return func(opts *BootstrapOptions) {
		opts.OpenerFactory = factory
	}
}

// WithLogger sets the logger backing the log sink.
func WithLogger(logger *slog.Logger) BootstrapOptionFunc {
	return func(opts *BootstrapOptions) {
		opts.Logger = logger
	}
}

func defaultOpenerFactory(ctx context.Context, credentialsJSON []byte) (sheets.Opener, error) {
	opener, err := sheets.NewServiceAccountOpener(ctx, credentialsJSON)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return opener, nil
}

// NewBootstrap returns the cold start routine: it resolves the secrets named
// in conf and builds the search client and the sinks.
func NewBootstrap(conf *config.Config, secrets secret.Provider, funcs ...BootstrapOptionFunc) BootstrapFunc {
	opts := &BootstrapOptions{
		OpenerFactory: defaultOpenerFactory,
	}
	for _, fn := range funcs {
		fn(opts)
	}

	return func(ctx context.Context) (*Environment, error) {
		slog.DebugContext(ctx, "cold start", slog.String("apiKeyName", conf.APIKeyName), slog.String("serviceAccountSecretName", conf.ServiceAccountSecretName))

		apiKey, err := secrets.Get(ctx, conf.APIKeyName)
		if err != nil {
			return nil, errors.Wrapf(err, "could not resolve api key '%s'", conf.APIKeyName)
		}

		fetcher := opts.Fetcher
		if fetcher == nil {
			switch conf.Search.Transport {
			case config.TransportSurf:
				fetcher = surf.NewFetcher()
			default:
				fetcher = fetch.Default()
			}
		}

		searchClient := shodan.NewClient(apiKey,
			shodan.WithBaseURL(conf.Search.BaseURL),
			shodan.WithFetcher(fetcher),
		)

		sinks := []sink.Sink{
			logsink.NewSink(opts.Logger),
		}

		if conf.SpreadsheetEnabled() {
			credentials, err := secrets.Get(ctx, conf.ServiceAccountSecretName)
			if err != nil {
				return nil, errors.Wrapf(err, "could not resolve service account '%s'", conf.ServiceAccountSecretName)
			}

			opener, err := opts.OpenerFactory(ctx, []byte(credentials))
			if err != nil {
				return nil, errors.Wrap(err, "could not authenticate spreadsheet sink")
			}

			sinks = append(sinks, sheets.NewSink(opener, conf.Spreadsheet.Title))
		} else {
			slog.InfoContext(ctx, "no service account configured, spreadsheet output disabled")
		}

		return &Environment{
			Query:  conf.Search.Query,
			Limit:  conf.Search.Limit,
			Search: searchClient,
			Sinks:  sinks,
		}, nil
	}
}
