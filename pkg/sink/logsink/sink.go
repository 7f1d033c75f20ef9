package logsink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bornholm/hostscan/pkg/sink"
)

// Sink writes batches to a structured logger.
type Sink struct {
	logger *slog.Logger
}

// Write implements sink.Sink.
func (s *Sink) Write(ctx context.Context, batch sink.Batch) error {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, l := range batch.Lines {
		logger.InfoContext(ctx, l)
	}

	logger.InfoContext(ctx, Summary(batch), slog.Int("retrieved", batch.Retrieved), slog.Int("total", batch.Total))

	return nil
}

func Summary(batch sink.Batch) string {
	return fmt.Sprintf("retrieved %d out of %d total results", batch.Retrieved, batch.Total)
}

// NewSink creates a log sink. A nil logger means slog.Default() at write time.
func NewSink(logger *slog.Logger) *Sink {
	return &Sink{
		logger: logger,
	}
}

var _ sink.Sink = &Sink{}
