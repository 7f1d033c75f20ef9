package secret

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

// Memo caches resolved secrets for the lifetime of the process. Failed
// lookups are not cached.
type Memo struct {
	provider Provider

	mutex  sync.Mutex
	values map[string]string
}

// Get implements Provider.
func (m *Memo) Get(ctx context.Context, name string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if value, exists := m.values[name]; exists {
		return value, nil
	}

	slog.DebugContext(ctx, "resolving secret", slog.String("name", name))

	value, err := m.provider.Get(ctx, name)
	if err != nil {
		return "", errors.WithStack(err)
	}

	m.values[name] = value

	return value, nil
}

func Memoize(provider Provider) *Memo {
	return &Memo{
		provider: provider,
		values:   make(map[string]string),
	}
}

var _ Provider = &Memo{}
