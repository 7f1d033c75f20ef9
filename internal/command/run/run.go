package run

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/bornholm/hostscan/internal/command/common"
	"github.com/bornholm/hostscan/pkg/job"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"
)

func Run() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a single search and write its results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "event",
				Value:   "{}",
				Aliases: []string{"e"},
				EnvVars: []string{"HOSTSCAN_EVENT"},
				Usage:   "Opaque event payload, logged at debug level",
			},
			&cli.StringFlag{
				Name:      "report",
				Value:     "",
				Aliases:   []string{"r"},
				EnvVars:   []string{"HOSTSCAN_REPORT"},
				Usage:     "Write a YAML report of the run to the given file ('-' to derive it from the query)",
				TakesFile: true,
			},
		},
		Action: func(cliCtx *cli.Context) error {
			ctx := cliCtx.Context

			runner, conf, cleanup, err := common.NewRunner(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer cleanup()

			event := job.Event(strings.TrimSpace(cliCtx.String("event")))

			report, err := runner.Handle(ctx, event, job.NewInvocation(job.TriggerRun, ""))
			if err != nil {
				return errors.Wrap(err, "run failed")
			}

			output := cliCtx.String("report")
			if output == "" {
				return nil
			}

			if output == "-" {
				output = ReportFilename(conf.Search.Query)
			}

			data, err := EncodeReport(report)
			if err != nil {
				return errors.WithStack(err)
			}

			if err := os.WriteFile(output, data, 0644); err != nil {
				return errors.Wrapf(err, "failed to write report")
			}

			slog.InfoContext(ctx, "report written", slog.String("output", output))

			return nil
		},
	}
}

func ReportFilename(query string) string {
	return slug.Make("hostscan "+query) + ".yaml"
}

func EncodeReport(report *job.Report) ([]byte, error) {
	var buff bytes.Buffer

	encoder := yaml.NewEncoder(&buff)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return nil, errors.Wrapf(err, "failed to encode report")
	}

	if err := encoder.Close(); err != nil {
		return nil, errors.WithStack(err)
	}

	return buff.Bytes(), nil
}
