package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wippyai/fwsize/layout"
)

var (
	purpleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8D80FF"))

	pinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF80DD"))

	mintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7FFFBF"))

	yellowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))
)

// Renderer writes region reports to a terminal or any other writer.
// Styling is on by default; callers turn it off for pipes and files.
type Renderer struct {
	w     io.Writer
	color bool
}

// New returns a Renderer writing to w with color enabled.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w, color: true}
}

// SetColor toggles ANSI styling.
func (r *Renderer) SetColor(on bool) {
	r.color = on
}

// Render writes the full report, one block per region, framed by
// blank lines. Each block is the usage summary, the proportional bar,
// and one line per record with its size, delta, and share of the
// region.
func (r *Renderer) Render(diffs []layout.RegionDiff) error {
	if err := r.line(""); err != nil {
		return err
	}
	for i := range diffs {
		if err := r.renderRegion(&diffs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRegion(region *layout.RegionDiff) error {
	var used uint64
	for _, s := range region.Sections {
		used += s.Size
	}

	title := fmt.Sprintf("%-*s", TitleWidth, formatTitle(region.Name+" used"))
	usedCol := fmt.Sprintf("%*s", SingleSizeWidth, FormatSize(used))
	totalCol := fmt.Sprintf("%-*s", SingleSizeWidth, FormatSize(region.Length))
	usage := fmt.Sprintf("%*s", UsageWidth, fmt.Sprintf("(%d%%)", percentOf(used, region.Length)))

	header := title + r.paint(usedCol, purpleStyle) + sepSlot("/") + totalCol + usage
	if err := r.line(header); err != nil {
		return err
	}
	if err := r.renderBar(region); err != nil {
		return err
	}
	for i, s := range region.Sections {
		if err := r.renderSection(s, i, region.Length); err != nil {
			return err
		}
	}
	return r.line("")
}

// renderBar draws the region's usage bar: each record gets its share
// of FullLineWidth cells, rounded per record, alternating the two
// accent colors; whatever remains is unused shading. An overflowing
// region simply has no unused remainder.
func (r *Renderer) renderBar(region *layout.RegionDiff) error {
	var b strings.Builder
	cells := 0
	for i, s := range region.Sections {
		n := barCells(s.Size, region.Length)
		if n == 0 {
			continue
		}
		b.WriteString(r.paint(strings.Repeat(UsedCell, n), r.accent(i)))
		cells += n
	}
	if cells < FullLineWidth {
		b.WriteString(strings.Repeat(FreeCell, FullLineWidth-cells))
	}
	return r.line(b.String())
}

func (r *Renderer) renderSection(s layout.SectionDiff, index int, capacity uint64) error {
	style := r.accent(index)

	title := fmt.Sprintf("%-*s", TitleWidth, formatTitle(s.Name))
	sizeCol := fmt.Sprintf("%*s", SingleSizeWidth, FormatSize(s.Size))
	deltaCol := fmt.Sprintf("%-*s", SingleSizeWidth, formatDelta(s.Delta))
	usage := fmt.Sprintf("%*s", UsageWidth, fmt.Sprintf("(%d%%)", percentOf(s.Size, capacity)))

	var deltaSeg string
	switch {
	case s.Delta > 0:
		deltaSeg = r.paint(deltaCol, yellowStyle)
	case s.Delta < 0:
		deltaSeg = r.paint(deltaCol, mintStyle)
	default:
		deltaSeg = deltaCol
	}

	line := r.paint(title+sizeCol+sepSlot(""), style) + deltaSeg + r.paint(usage, style)
	return r.line(line)
}

// accent returns the line color for a record index; records and bar
// segments alternate between the two accent colors.
func (r *Renderer) accent(index int) lipgloss.Style {
	if index%2 == 0 {
		return pinkStyle
	}
	return purpleStyle
}

func (r *Renderer) paint(s string, style lipgloss.Style) string {
	if !r.color || s == "" {
		return s
	}
	return style.Render(s)
}

func (r *Renderer) line(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

func barCells(size, capacity uint64) int {
	if capacity == 0 {
		return 0
	}
	return int(math.Round(float64(size) / float64(capacity) * FullLineWidth))
}
