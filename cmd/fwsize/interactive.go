package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/wippyai/fwsize/layout"
	"github.com/wippyai/fwsize/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#8D80FF")).
			Padding(0, 1)

	regionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8D80FF"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF80DD"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#8D80FF"))

	growthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	shrinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7FFFBF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserModel struct {
	err      error
	elfFile  string
	ldFile   string
	edits    string
	sizeProg string
	diffs    []layout.RegionDiff
	filter   textinput.Model
	selected int
	state    browserState
	loaded   bool
}

type browserState int

const (
	stateSelectRegion browserState = iota
	stateFilterRegions
	stateShowRegion
)

func newBrowserModel(elfFile, ldFile, edits, sizeProg string) *browserModel {
	ti := textinput.New()
	ti.Placeholder = "region name"
	ti.Prompt = "/ "
	ti.Width = 30

	return &browserModel{
		elfFile:  elfFile,
		ldFile:   ldFile,
		edits:    edits,
		sizeProg: sizeProg,
		filter:   ti,
		state:    stateSelectRegion,
	}
}

type layoutLoadedMsg struct {
	err   error
	diffs []layout.RegionDiff
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadLayout
}

func (m *browserModel) loadLayout() tea.Msg {
	diffs, _, err := analyze(m.elfFile, m.ldFile, m.edits, m.sizeProg)
	if err != nil {
		return layoutLoadedMsg{err: err}
	}
	return layoutLoadedMsg{diffs: diffs}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilterRegions {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectRegion && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectRegion && m.selected < len(m.visible())-1 {
				m.selected++
			}

		case "/":
			if m.state == stateSelectRegion {
				m.state = stateFilterRegions
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "enter":
			if m.state == stateSelectRegion && len(m.visible()) > 0 {
				m.state = stateShowRegion
			}

		case "esc":
			switch m.state {
			case stateShowRegion:
				m.state = stateSelectRegion
			case stateSelectRegion:
				m.filter.SetValue("")
				m.selected = 0
			}
		}

	case layoutLoadedMsg:
		m.err = msg.err
		m.diffs = msg.diffs
		m.loaded = true
	}

	return m, nil
}

func (m *browserModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		m.state = stateSelectRegion
		m.filter.Blur()
		m.selected = 0
		return m, nil

	case "esc":
		m.state = stateSelectRegion
		m.filter.Blur()
		m.filter.SetValue("")
		m.selected = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.selected = 0
	return m, cmd
}

// visible returns the regions matching the current filter text.
func (m *browserModel) visible() []layout.RegionDiff {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return m.diffs
	}
	var out []layout.RegionDiff
	for _, d := range m.diffs {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			out = append(out, d)
		}
	}
	return out
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Measuring " + m.elfFile + "..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("fwsize"))
	b.WriteString(" ")
	b.WriteString(m.elfFile)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectRegion, stateFilterRegions:
		m.viewRegionList(&b)
	case stateShowRegion:
		m.viewRegionDetail(&b)
	}

	return b.String()
}

func (m *browserModel) viewRegionList(b *strings.Builder) {
	if m.state == stateFilterRegions || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString("No regions match.\n\n")
		b.WriteString(helpStyle.Render("esc clear filter • q quit"))
		return
	}
	if m.selected >= len(visible) {
		m.selected = len(visible) - 1
	}

	for i, d := range visible {
		row := m.formatRegionRow(d)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • / filter • q quit"))
}

func (m *browserModel) formatRegionRow(d layout.RegionDiff) string {
	var used uint64
	for _, s := range d.Sections {
		used += s.Size
	}
	return fmt.Sprintf("%-12s %10s / %-10s %s",
		d.Name, humanize.IBytes(used), humanize.IBytes(d.Length), usageCell(used, d.Length))
}

func (m *browserModel) viewRegionDetail(b *strings.Builder) {
	visible := m.visible()
	if m.selected >= len(visible) {
		m.selected = 0
	}
	d := visible[m.selected]

	var used uint64
	for _, s := range d.Sections {
		used += s.Size
	}

	b.WriteString(regionStyle.Render(d.Name))
	b.WriteString(fmt.Sprintf("  %s of %s used (%s)\n\n",
		humanize.IBytes(used), humanize.IBytes(d.Length), usageCell(used, d.Length)))

	b.WriteString(detailBar(d))
	b.WriteString("\n\n")

	for i, s := range d.Sections {
		accent := sectionStyle
		if i%2 == 1 {
			accent = regionStyle
		}
		b.WriteString(accent.Render(fmt.Sprintf("%-20s %10s", s.Name, humanize.IBytes(s.Size))))
		switch {
		case s.Delta > 0:
			b.WriteString("  " + growthStyle.Render("+"+humanize.IBytes(uint64(s.Delta))))
		case s.Delta < 0:
			b.WriteString("  " + shrinkStyle.Render("-"+humanize.IBytes(uint64(-s.Delta))))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc back • q quit"))
}

// detailBar draws the same proportional bar the report prints, with
// each section's share in its accent color.
func detailBar(d layout.RegionDiff) string {
	var b strings.Builder
	cells := 0
	for i, s := range d.Sections {
		n := 0
		if d.Length > 0 {
			n = int(math.Round(float64(s.Size) / float64(d.Length) * report.FullLineWidth))
		}
		if n == 0 {
			continue
		}
		accent := sectionStyle
		if i%2 == 1 {
			accent = regionStyle
		}
		b.WriteString(accent.Render(strings.Repeat(report.UsedCell, n)))
		cells += n
	}
	if cells < report.FullLineWidth {
		b.WriteString(strings.Repeat(report.FreeCell, report.FullLineWidth-cells))
	}
	return b.String()
}

func runInteractive(elfFile, ldFile, edits, sizeProg string) error {
	p := tea.NewProgram(newBrowserModel(elfFile, ldFile, edits, sizeProg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
