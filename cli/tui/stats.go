package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justapithecus/brrr/metrics"
)

// StatsModel is a Bubble Tea model for the "brrr stats" view over a
// metrics.Snapshot.
type StatsModel struct {
	snapshot metrics.Snapshot
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a new stats model.
func NewStatsModel(snapshot metrics.Snapshot) StatsModel {
	return StatsModel{snapshot: snapshot}
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return m.render() + "\n" + help
}

func (m StatsModel) render() string {
	var b []string
	b = append(b, TitleStyle.Render("Engine Statistics"))

	s := m.snapshot
	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderStatBox("Executed", s.TasksExecuted, highlightColor),
		m.renderStatBox("Deferred", s.TasksDeferred, warningColor),
		m.renderStatBox("Returned", s.TasksReturned, successColor),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderStatBox("Enqueued", s.Enqueued, highlightColor),
		m.renderStatBox("Parents Woken", s.ParentsWoken, successColor),
		m.renderStatBox("Value Conflicts", s.ValueConflicts, warningColor),
		m.renderStatBox("Spawn Limit Hits", s.SpawnLimitHits, errorColor),
	)

	return b[0] + "\n\n" + row1 + "\n\n" + row2
}

func (m StatsModel) renderStatBox(label string, value int64, color lipgloss.Color) string {
	boxStyle := StatBoxStyle.BorderForeground(color)

	valueStr := StatValueStyle.Foreground(color).Render(fmt.Sprintf("%d", value))
	labelStr := StatLabelStyle.Render(label)

	content := lipgloss.JoinVertical(lipgloss.Center, valueStr, labelStr)

	return boxStyle.Render(content)
}

// RunStatsTUI runs the stats TUI. data must be a metrics.Snapshot.
func RunStatsTUI(data any) error {
	snapshot, ok := data.(metrics.Snapshot)
	if !ok {
		return fmt.Errorf("tui: stats: unexpected data type %T", data)
	}
	model := NewStatsModel(snapshot)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderStatsStatic renders stats data without full TUI (for the
// non-interactive --tui=false fallback).
func RenderStatsStatic(snapshot metrics.Snapshot) string {
	model := NewStatsModel(snapshot)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.render())
}
