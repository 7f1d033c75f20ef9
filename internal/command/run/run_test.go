package run

import (
	"testing"
	"time"

	"github.com/bornholm/hostscan/pkg/job"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestReportFilename(t *testing.T) {
	if e, g := "hostscan-product-nginx-country-de.yaml", ReportFilename(`product:"nginx" country:DE`); e != g {
		t.Errorf("ReportFilename: expected %q, got %q", e, g)
	}
}

func TestEncodeReport(t *testing.T) {
	report := &job.Report{
		Invocation: job.Invocation{
			ID:        "d0ul3vrq3ka2j3f0b4ng",
			Trigger:   job.TriggerRun,
			StartedAt: time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
		},
		Query:     "apache",
		Retrieved: 100,
		Total:     2567,
		Lines:     []string{"US says X", "DE says Y"},
	}

	data, err := EncodeReport(report)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expected := `invocation:
  id: d0ul3vrq3ka2j3f0b4ng
  trigger: run
  startedAt: 2026-10-18T08:00:00Z
query: apache
retrieved: 100
total: 2567
lines:
  - US says X
  - DE says Y
`

	if diff := cmp.Diff(expected, string(data)); diff != "" {
		t.Errorf("unexpected report (-want +got):\n%s", diff)
	}
}
