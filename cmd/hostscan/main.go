package main

import (
	"github.com/bornholm/hostscan/internal/command"
	"github.com/bornholm/hostscan/internal/command/run"
	"github.com/bornholm/hostscan/internal/command/serve"
)

var (
	version string = "dev"
)

func main() {
	command.Main(
		"hostscan",
		version,
		"Query a host search API on a schedule and publish the top results",
		run.Run(),
		serve.Serve(),
	)
}
