package secret

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("secret not found")
	ErrAccessDenied = errors.New("secret access denied")
)

type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

type ProviderFunc func(ctx context.Context, name string) (string, error)

// Get implements Provider.
func (fn ProviderFunc) Get(ctx context.Context, name string) (string, error) {
	return fn(ctx, name)
}

var _ Provider = ProviderFunc(nil)
