package serve

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bornholm/hostscan/internal/command/common"
	"github.com/bornholm/hostscan/internal/logx"
	"github.com/bornholm/hostscan/pkg/job"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
)

func Serve() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the search periodically until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "schedule",
				Value:   "",
				Aliases: []string{"s"},
				Usage:   "Cron expression overriding HOSTSCAN_SCHEDULE",
			},
			&cli.BoolFlag{
				Name:    "run-on-start",
				EnvVars: []string{"HOSTSCAN_RUN_ON_START"},
				Usage:   "Run once immediately after startup",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner, conf, cleanup, err := common.NewRunner(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer cleanup()

			schedule := conf.Schedule
			if s := cliCtx.String("schedule"); s != "" {
				schedule = s
			}

			// Secrets and sinks are required before anything can be scheduled
			if _, err := runner.Environment(ctx); err != nil {
				return errors.Wrap(err, "cold start failed")
			}

			logger := logx.NewCronLogger(slog.Default())

			scheduler := cron.New(
				cron.WithLogger(logger),
				cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
			)

			tick := func() {
				handle(ctx, runner, job.NewInvocation(job.TriggerCron, schedule))
			}

			if _, err := scheduler.AddFunc(schedule, tick); err != nil {
				return errors.Wrapf(err, "invalid schedule '%s'", schedule)
			}

			if cliCtx.Bool("run-on-start") {
				handle(ctx, runner, job.NewInvocation(job.TriggerRun, schedule))
			}

			scheduler.Start()

			slog.InfoContext(ctx, "scheduler started", slog.String("schedule", schedule))

			<-ctx.Done()

			slog.InfoContext(ctx, "stopping scheduler")

			<-scheduler.Stop().Done()

			return nil
		},
	}
}

func handle(ctx context.Context, runner *job.Runner, invocation job.Invocation) {
	event, err := json.Marshal(struct {
		Schedule    string    `json:"schedule"`
		ScheduledAt time.Time `json:"scheduledAt"`
	}{
		Schedule:    invocation.Schedule,
		ScheduledAt: invocation.StartedAt,
	})
	if err != nil {
		slog.ErrorContext(ctx, "could not encode event", slog.Any("error", errors.WithStack(err)))
		return
	}

	if _, err := runner.Handle(ctx, event, invocation); err != nil {
		slog.ErrorContext(ctx, "tick failed", slog.String("invocation", invocation.ID), slog.Any("error", err))
	}
}
