package job

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/rs/xid"
)

const (
	TriggerRun  = "run"
	TriggerCron = "cron"
)

// Event is the opaque payload handed over by whatever triggered the tick. It
// is logged, never interpreted.
type Event = json.RawMessage

// Invocation describes the execution context of a tick.
type Invocation struct {
	ID        string    `yaml:"id"`
	Trigger   string    `yaml:"trigger"`
	Schedule  string    `yaml:"schedule,omitempty"`
	StartedAt time.Time `yaml:"startedAt"`
}

// LogValue implements slog.LogValuer.
func (i Invocation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", i.ID),
		slog.String("trigger", i.Trigger),
		slog.String("schedule", i.Schedule),
		slog.Time("startedAt", i.StartedAt),
	)
}

func NewInvocation(trigger string, schedule string) Invocation {
	return Invocation{
		ID:        xid.New().String(),
		Trigger:   trigger,
		Schedule:  schedule,
		StartedAt: time.Now(),
	}
}

var _ slog.LogValuer = Invocation{}
