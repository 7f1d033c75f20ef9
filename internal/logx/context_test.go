package logx

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextHandler(t *testing.T) {
	var buff bytes.Buffer

	logger := slog.New(ContextHandler{
		Handler: slog.NewTextHandler(&buff, &slog.HandlerOptions{}),
	})

	ctx := WithAttrs(context.Background(), slog.String("invocation", "abc"))
	ctx = WithAttrs(ctx, slog.String("trigger", "cron"))

	logger.With(slog.String("component", "job")).InfoContext(ctx, "tick")
	logger.InfoContext(context.Background(), "idle")

	lines := strings.Split(strings.TrimSpace(buff.String()), "\n")
	if e, g := 2, len(lines); e != g {
		t.Fatalf("len(lines): expected %d, got %d", e, g)
	}

	if !strings.HasSuffix(lines[0], `msg=tick component=job invocation=abc trigger=cron`) {
		t.Errorf("unexpected first line %q", lines[0])
	}

	if strings.Contains(lines[1], "invocation=") {
		t.Errorf("unexpected context attributes in %q", lines[1])
	}
}

func TestCronLogger(t *testing.T) {
	var buff bytes.Buffer

	logger := NewCronLogger(slog.New(slog.NewTextHandler(&buff, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Info("wake", "now", "later")

	if !strings.Contains(buff.String(), `level=DEBUG msg=wake component=scheduler now=later`) {
		t.Errorf("unexpected output %q", buff.String())
	}
}
