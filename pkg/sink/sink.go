package sink

import "context"

type Sink interface {
	Write(ctx context.Context, batch Batch) error
}

// Batch is the output of a single tick.
type Batch struct {
	// Lines are the formatted results, in search order.
	Lines []string
	// Retrieved is the number of matches returned by the search host.
	Retrieved int
	// Total is the server-side number of matches.
	Total int
}
