// Package ui renders a progress view for lint runs over many files.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"convlint/internal/driver"
)

const recentFiles = 5

type progressModel struct {
	title    string
	events   <-chan driver.ProgressEvent
	spinner  spinner.Model
	prog     progress.Model
	phase    driver.Phase
	total    int
	done     int
	recent   []string
	width    int
	finished bool
}

type eventMsg driver.ProgressEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model fed by events; the model
// quits when the channel is closed.
func NewProgressModel(title string, events <-chan driver.ProgressEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		phase:   driver.PhaseDiscover,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.ProgressEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%s %d/%d)", m.title, phaseLabel(m.phase), m.done, m.total)
	if m.finished {
		header = "done: " + m.title
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-16, 20)
	for _, path := range m.recent {
		status := styleStatus(m.phase).Render(fmt.Sprintf("%12s", phaseLabel(m.phase)))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(path, nameWidth))
	}

	b.WriteString("\n")
	if m.finished {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.ViewAs(m.percent()))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent opens a phase on events without a path and counts a file
// otherwise.
func (m *progressModel) applyEvent(ev driver.ProgressEvent) tea.Cmd {
	if ev.Path == "" {
		m.phase = ev.Phase
		m.total = ev.Total
		m.done = 0
		m.recent = m.recent[:0]
		return m.prog.SetPercent(m.percent())
	}
	m.done++
	m.recent = append(m.recent, ev.Path)
	if len(m.recent) > recentFiles {
		m.recent = m.recent[len(m.recent)-recentFiles:]
	}
	return m.prog.SetPercent(m.percent())
}

// percent weighs parsing and linting as halves of the run.
func (m *progressModel) percent() float64 {
	frac := 0.0
	if m.total > 0 {
		frac = float64(min(m.done, m.total)) / float64(m.total)
	}
	switch m.phase {
	case driver.PhaseParse:
		return frac / 2
	case driver.PhaseLint:
		return 0.5 + frac/2
	case driver.PhaseDone, driver.PhaseRender:
		return 1
	}
	return 0
}

func phaseLabel(p driver.Phase) string {
	switch p {
	case driver.PhaseDiscover:
		return "discovering"
	case driver.PhaseParse:
		return "parsing"
	case driver.PhaseLint:
		return "linting"
	case driver.PhaseRender, driver.PhaseDone:
		return "done"
	}
	return string(p)
}

func styleStatus(p driver.Phase) lipgloss.Style {
	switch p {
	case driver.PhaseDone, driver.PhaseRender:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.PhaseParse, driver.PhaseLint:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
