// Package env resolves secrets from environment variables, for local runs
// where no secret store is reachable.
package env

import (
	"context"
	"os"
	"strings"

	"github.com/bornholm/hostscan/pkg/secret"
	"github.com/pkg/errors"
)

const DefaultPrefix = "HOSTSCAN_SECRET_"

type Provider struct {
	prefix string
	lookup func(string) (string, bool)
}

// Get implements secret.Provider.
//
// The secret "service-account.json" is read from HOSTSCAN_SECRET_SERVICE_ACCOUNT_JSON.
func (p *Provider) Get(ctx context.Context, name string) (string, error) {
	key := VariableName(p.prefix, name)

	value, exists := p.lookup(key)
	if !exists {
		return "", errors.Wrapf(secret.ErrNotFound, "environment variable '%s' is not set", key)
	}

	return value, nil
}

func VariableName(prefix, name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)

	return prefix + name
}

type OptionFunc func(*Provider)

func WithPrefix(prefix string) OptionFunc {
	return func(p *Provider) {
		p.prefix = prefix
	}
}

func WithLookup(lookup func(string) (string, bool)) OptionFunc {
	return func(p *Provider) {
		p.lookup = lookup
	}
}

func NewProvider(funcs ...OptionFunc) *Provider {
	provider := &Provider{
		prefix: DefaultPrefix,
		lookup: os.LookupEnv,
	}

	for _, fn := range funcs {
		fn(provider)
	}

	return provider
}

var _ secret.Provider = &Provider{}
