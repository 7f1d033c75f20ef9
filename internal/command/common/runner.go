package common

import (
	"context"
	"log/slog"

	"github.com/bornholm/hostscan/internal/config"
	"github.com/bornholm/hostscan/pkg/job"
	"github.com/bornholm/hostscan/pkg/secret"
	"github.com/bornholm/hostscan/pkg/secret/env"
	"github.com/bornholm/hostscan/pkg/secret/gcp"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// NewRunner loads the configuration and assembles the job runner. The
// returned func releases the secret store client.
func NewRunner(cliCtx *cli.Context) (*job.Runner, *config.Config, func(), error) {
	conf, err := config.Load(cliCtx.String("dotenv"))
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "could not load configuration")
	}

	provider, closeProvider, err := newSecretProvider(cliCtx.Context, conf)
	if err != nil {
		return nil, nil, nil, errors.WithStack(err)
	}

	runner := job.NewRunner(job.NewBootstrap(conf, secret.Memoize(provider)))

	return runner, conf, closeProvider, nil
}

func newSecretProvider(ctx context.Context, conf *config.Config) (secret.Provider, func(), error) {
	switch conf.Secrets.Provider {
	case config.SecretProviderEnv:
		return env.NewProvider(), func() {}, nil

	case config.SecretProviderGCP:
		provider, err := gcp.NewProvider(ctx, conf.Secrets.GCPProjectID)
		if err != nil {
			return nil, nil, errors.WithStack(err)
		}

		return provider, func() {
			if err := provider.Close(); err != nil {
				slog.WarnContext(ctx, "could not close secret manager client", slog.Any("error", errors.WithStack(err)))
			}
		}, nil

	default:
		return nil, nil, errors.Errorf("unknown secret provider '%s'", conf.Secrets.Provider)
	}
}
