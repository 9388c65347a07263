package report

import (
	"fmt"
	"math"
	"strconv"
)

// Column geometry of a report line. A line is the title column, the
// two size columns around a one-character separator slot, and the
// right-aligned usage column; the bar underneath spans the same total
// width, one cell per character.
const (
	TitleWidth      = 18
	UsageWidth      = 7
	SingleSizeWidth = 10
	TitleSuffix     = ": "

	SizeInfoWidth = 2*SingleSizeWidth + 5
	FullLineWidth = TitleWidth + SizeInfoWidth + UsageWidth
)

// Bar glyphs.
const (
	UsedCell = "▓"
	FreeCell = "░"
)

// FormatSize renders a byte count the way the report prints sizes:
// bare digits below one KiB, otherwise two decimals with a binary
// unit ("1.00 KiB", "3.50 MiB").
func FormatSize(n uint64) string {
	if n < 1024 {
		return strconv.FormatUint(n, 10)
	}
	v := float64(n) / 1024
	for _, unit := range []string{"Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi"} {
		if v < 1024 {
			return fmt.Sprintf("%.2f %sB", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.2f YiB", v)
}

// formatTitle appends the title suffix, ellipsizing long names at the
// rune level so the result never exceeds TitleWidth.
func formatTitle(name string) string {
	max := TitleWidth - len(TitleSuffix)
	runes := []rune(name)
	if len(runes) > max {
		return string(runes[:max-1]) + "…" + TitleSuffix
	}
	return name + TitleSuffix
}

// formatDelta renders a signed byte change: empty for zero, otherwise
// the sign and the magnitude in FormatSize form.
func formatDelta(delta int64) string {
	switch {
	case delta > 0:
		return "+" + FormatSize(uint64(delta))
	case delta < 0:
		return "-" + FormatSize(uint64(-delta))
	}
	return ""
}

// sepSlot expands a one-character separator into the padding that
// joins the two size columns.
func sepSlot(sep string) string {
	return fmt.Sprintf("  %-1s  ", sep)
}

func percentOf(size, capacity uint64) int {
	if capacity == 0 {
		return 0
	}
	return int(math.Round(100 * float64(size) / float64(capacity)))
}
