// Package sheets writes tick results into the first worksheet of a
// spreadsheet, one line per row of the first column.
package sheets

import (
	"context"
	"log/slog"

	"github.com/bornholm/hostscan/pkg/sink"
	"github.com/pkg/errors"
)

const DefaultTitle = "shodan output"

// Sink overwrites cells (1,1) to (N,1) with the N lines of a batch. There is
// no locking: concurrent writers on the same spreadsheet race, and a failure
// mid-batch leaves the rows written so far in place.
type Sink struct {
	opener Opener
	title  string
}

// Write implements sink.Sink.
func (s *Sink) Write(ctx context.Context, batch sink.Batch) error {
	worksheet, err := s.opener.Open(ctx, s.title)
	if err != nil {
		return errors.Wrapf(err, "could not open spreadsheet '%s'", s.title)
	}

	slog.DebugContext(ctx, "writing to worksheet", slog.String("spreadsheet", s.title), slog.String("worksheet", worksheet.Title()), slog.Int("rows", len(batch.Lines)))

	for i, l := range batch.Lines {
		row := i + 1
		if err := worksheet.UpdateCell(ctx, row, 1, l); err != nil {
			return errors.Wrapf(err, "could not update row %d of worksheet '%s'", row, worksheet.Title())
		}
	}

	return nil
}

func NewSink(opener Opener, title string) *Sink {
	if title == "" {
		title = DefaultTitle
	}

	return &Sink{
		opener: opener,
		title:  title,
	}
}

var _ sink.Sink = &Sink{}
