// Package format turns search results into the lines handed to sinks.
package format

import (
	"fmt"

	"github.com/bornholm/hostscan/pkg/search"
)

const DefaultLimit = 5

// Project keeps the first limit results, in their original order, and
// renders each of them as a single line.
func Project(results []search.Result, limit int) []string {
	if limit < 0 {
		limit = 0
	}

	if limit > len(results) {
		limit = len(results)
	}

	lines := make([]string, 0, limit)
	for _, r := range results[:limit] {
		lines = append(lines, Line(r))
	}

	return lines
}

// Line renders a single result.
func Line(r search.Result) string {
	return fmt.Sprintf("%s says %s", r.Country, r.Data)
}
