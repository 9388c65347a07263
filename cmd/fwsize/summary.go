package main

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/wippyai/fwsize/layout"
)

// printSummary writes the per-region totals table: one row per region
// with its used bytes, declared capacity, usage percentage, and the
// net change against the persisted history.
func printSummary(w io.Writer, diffs []layout.RegionDiff) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Region", "Used", "Capacity", "Usage", "Change"})

	var totalUsed, totalCapacity uint64
	for _, d := range diffs {
		var used uint64
		var change int64
		for _, s := range d.Sections {
			used += s.Size
			change += s.Delta
		}
		totalUsed += used
		totalCapacity += d.Length

		table.Append([]string{
			d.Name,
			humanize.IBytes(used),
			humanize.IBytes(d.Length),
			usageCell(used, d.Length),
			changeCell(change),
		})
	}

	table.SetFooter([]string{
		"Total",
		humanize.IBytes(totalUsed),
		humanize.IBytes(totalCapacity),
		usageCell(totalUsed, totalCapacity),
		"",
	})
	table.Render()
}

func usageCell(used, capacity uint64) string {
	if capacity == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(100*float64(used)/float64(capacity))))
}

func changeCell(delta int64) string {
	switch {
	case delta > 0:
		return "+" + humanize.IBytes(uint64(delta))
	case delta < 0:
		return "-" + humanize.IBytes(uint64(-delta))
	}
	return ""
}
