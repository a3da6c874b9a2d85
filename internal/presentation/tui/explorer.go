package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/collatz/internal/adapters/file"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/aretw0/collatz/pkg/ports"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MsgInvalidInput is shown when a field is not a positive integer.
const MsgInvalidInput = "Please provide positive integers for both fields."

const (
	fieldSeed = iota
	fieldLimit
	fieldExport
)

// Engine is the engine surface the explorer needs.
type Engine interface {
	Compute(ctx context.Context, seed int64, limit int) (*domain.SequenceResult, error)
}

// StoreFactory opens the store an export is written to.
type StoreFactory func(path string) ports.StateStore

type explorerStyles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Summary lipgloss.Style
	Error   lipgloss.Style
	Status  lipgloss.Style
	Help    lipgloss.Style
}

func defaultExplorerStyles() explorerStyles {
	return explorerStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f59e0b")),
		Label:   lipgloss.NewStyle().Width(16),
		Summary: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#fb7185")).Padding(0, 1),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
	}
}

// ExplorerModel is the interactive Collatz explorer.
// Seed and limit are typed into fields; enter computes, ctrl+s exports the result as JSON.
type ExplorerModel struct {
	engine   Engine
	newStore StoreFactory

	inputs    []textinput.Model
	focus     int
	exporting bool
	list      viewport.Model

	result *domain.SequenceResult
	status string
	err    string

	styles explorerStyles
}

// NewExplorerModel creates the explorer with pre-filled seed and limit.
// A nil factory exports to files.
func NewExplorerModel(engine Engine, seed int64, limit int, newStore StoreFactory) ExplorerModel {
	if newStore == nil {
		newStore = func(path string) ports.StateStore { return file.New(path) }
	}

	seedInput := textinput.New()
	seedInput.Prompt = ""
	seedInput.Placeholder = "27"
	seedInput.CharLimit = 19
	seedInput.Width = 20
	seedInput.SetValue(strconv.FormatInt(seed, 10))
	seedInput.Focus()

	limitInput := textinput.New()
	limitInput.Prompt = ""
	limitInput.Placeholder = "256"
	limitInput.CharLimit = 9
	limitInput.Width = 20
	limitInput.SetValue(strconv.Itoa(limit))

	exportInput := textinput.New()
	exportInput.Prompt = ""
	exportInput.Placeholder = "collatz.json"
	exportInput.Width = 40

	return ExplorerModel{
		engine:   engine,
		newStore: newStore,
		inputs:   []textinput.Model{seedInput, limitInput, exportInput},
		list:     viewport.New(60, 12),
		styles:   defaultExplorerStyles(),
	}
}

// Init initializes the model.
func (m ExplorerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Result returns the last computed result, or nil.
func (m ExplorerModel) Result() *domain.SequenceResult {
	return m.result
}

// Status returns the last informational message.
func (m ExplorerModel) Status() string {
	return m.status
}

// Err returns the last error message.
func (m ExplorerModel) Err() string {
	return m.err
}

// Update handles messages.
func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.Width = msg.Width
		m.list.Height = max(msg.Height-16, 3)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.exporting {
				m.exporting = false
				m.setFocus(fieldSeed)
				return m, nil
			}
			return m, tea.Quit
		case "tab", "shift+tab":
			if !m.exporting {
				m.setFocus(1 - m.focus)
			}
			return m, nil
		case "enter":
			if m.exporting {
				m.export()
			} else {
				m.calculate()
			}
			return m, nil
		case "ctrl+s":
			if m.calculate() {
				m.exporting = true
				m.setFocus(fieldExport)
			}
			return m, nil
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *ExplorerModel) setFocus(field int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = field
	m.inputs[field].Focus()
}

// parseInputs reads both fields; the limit accepts 0 for the full trajectory.
func (m *ExplorerModel) parseInputs() (int64, int, bool) {
	seed, err := strconv.ParseInt(strings.TrimSpace(m.inputs[fieldSeed].Value()), 10, 64)
	if err != nil || seed < 1 {
		return 0, 0, false
	}
	limit, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldLimit].Value()))
	if err != nil || limit < 0 {
		return 0, 0, false
	}
	return seed, limit, true
}

// calculate runs the engine and refreshes the display. It reports success.
func (m *ExplorerModel) calculate() bool {
	m.status = ""
	seed, limit, ok := m.parseInputs()
	if !ok {
		m.err = MsgInvalidInput
		return false
	}

	result, err := m.engine.Compute(context.Background(), seed, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			m.err = MsgInvalidInput
		} else {
			m.err = fmt.Sprintf("Error: %v", err)
		}
		return false
	}

	m.err = ""
	m.result = result
	m.list.SetContent(EnumerateSequence(result.Sequence))
	m.list.GotoTop()
	return true
}

func (m *ExplorerModel) export() {
	path := strings.TrimSpace(m.inputs[fieldExport].Value())
	if path == "" {
		m.err = "Export failed: no path given"
		return
	}
	if m.result == nil {
		m.err = "Export failed: nothing computed yet"
		return
	}

	if err := m.newStore(path).Save(context.Background(), m.result); err != nil {
		m.err = fmt.Sprintf("Export failed: %v", err)
		return
	}

	m.err = ""
	m.status = fmt.Sprintf("Saved to %s", path)
	m.exporting = false
	m.setFocus(fieldSeed)
}

// View renders the explorer.
func (m ExplorerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Collatz Explorer"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Start value:") + m.inputs[fieldSeed].View() + "\n")
	b.WriteString(m.styles.Label.Render("Display limit:") + m.inputs[fieldLimit].View() + "\n")
	if m.exporting {
		b.WriteString(m.styles.Label.Render("Export to:") + m.inputs[fieldExport].View() + "\n")
	}
	b.WriteString("\n")

	if m.result != nil {
		b.WriteString(m.styles.Summary.Render(m.result.Summary()))
		b.WriteString("\n")
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString(m.styles.Error.Render(m.err) + "\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status) + "\n")
	}

	help := "enter: calculate • tab: switch field • ctrl+s: export JSON • ↑/↓: scroll • esc: quit"
	if m.exporting {
		help = "enter: save • esc: cancel"
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}

// EnumerateSequence renders one "index: value" line per value, starting at 1.
func EnumerateSequence(values []int64) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d: %d", i+1, v)
	}
	return b.String()
}

// RunExplorer starts the explorer program and blocks until it quits.
func RunExplorer(model ExplorerModel) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
