package secret

import (
	"context"
	"testing"

	"github.com/pkg/errors"
)

func TestMemoize(t *testing.T) {
	calls := map[string]int{}

	memo := Memoize(ProviderFunc(func(ctx context.Context, name string) (string, error) {
		calls[name]++
		if name == "missing" {
			return "", errors.WithStack(ErrNotFound)
		}
		return "value-of-" + name, nil
	}))

	ctx := context.Background()

	for i := 0; i < 10; i++ {
		value, err := memo.Get(ctx, "api_key")
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := "value-of-api_key", value; e != g {
			t.Errorf("value: expected %q, got %q", e, g)
		}
	}

	if e, g := 1, calls["api_key"]; e != g {
		t.Errorf("calls[api_key]: expected %d, got %d", e, g)
	}

	for i := 0; i < 2; i++ {
		if _, err := memo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	}

	if e, g := 2, calls["missing"]; e != g {
		t.Errorf("calls[missing]: expected %d, got %d", e, g)
	}
}
