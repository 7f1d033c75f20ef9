package logx

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// CronLogger forwards the scheduler's own logs to slog. Scheduler chatter is
// demoted to debug.
type CronLogger struct {
	logger *slog.Logger
}

// Info implements cron.Logger.
func (l *CronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Error implements cron.Logger.
func (l *CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}

func NewCronLogger(logger *slog.Logger) *CronLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &CronLogger{
		logger: logger.With(slog.String("component", "scheduler")),
	}
}

var _ cron.Logger = &CronLogger{}
