package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justapithecus/brrr/engine"
)

// InspectModel is a Bubble Tea model for the "brrr inspect" view.
type InspectModel struct {
	status   engine.CallStatus
	rootID   string
	width    int
	height   int
	quitting bool
}

// NewInspectModel creates a new inspect model over a call's status.
func NewInspectModel(rootID string, status engine.CallStatus) InspectModel {
	return InspectModel{rootID: rootID, status: status}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return m.render() + "\n" + help
}

func (m InspectModel) render() string {
	s := m.status

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Call Status"))
	b.WriteString("\n\n")

	state := "pending"
	if s.Ready {
		state = "ready"
	}

	rows := [][2]string{
		{"Root ID", m.rootID},
		{"Task", s.TaskName},
		{"Memo Key", s.MemoKey},
		{"State", state},
	}
	for _, row := range rows {
		label := LabelStyle.Render(row[0] + ":")
		value := row[1]
		if row[0] == "State" {
			b.WriteString(fmt.Sprintf("%s %s\n", label, StateStyle(value).Render(value)))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label, ValueStyle.Render(value)))
	}

	if s.Ready {
		b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Value:"), ValueStyle.Render(s.Value)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("Spawns:"),
		ValueStyle.Render(fmt.Sprintf("%d / %d", s.SpawnCount, s.SpawnLimit))))

	return BoxStyle.Render(b.String())
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunInspectTUI runs the inspect TUI. data must be an
// *InspectViewData (rootID and the call's status).
func RunInspectTUI(data any) error {
	view, ok := data.(*InspectViewData)
	if !ok {
		return fmt.Errorf("tui: inspect: unexpected data type %T", data)
	}
	model := NewInspectModel(view.RootID, view.Status)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderInspectStatic renders inspect data without full TUI (for the
// non-interactive --tui=false fallback).
func RenderInspectStatic(rootID string, status engine.CallStatus) string {
	model := NewInspectModel(rootID, status)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.render())
}

// InspectViewData bundles what the inspect TUI needs to render.
type InspectViewData struct {
	RootID string
	Status engine.CallStatus
}
