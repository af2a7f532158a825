// Package tui renders the interactive menu shown when the tool is launched
// without a subcommand.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action is what the operator picked from the menu.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionResume
	ActionReports
	ActionQuit
)

type menuItem struct {
	label  string
	hotkey string
	action Action
}

var menuItems = []menuItem{
	{"Start New Analysis", "s", ActionStart},
	{"Resume Analysis", "r", ActionResume},
	{"View Reports", "v", ActionReports},
	{"Quit", "q", ActionQuit},
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the Bubble Tea model for the main menu. The zero value is not
// usable; construct it with NewMenu.
type Model struct {
	cursor int
	choice Action
}

func NewMenu() Model {
	return Model{choice: ActionNone}
}

// Choice returns the action selected when the program exited.
func (m Model) Choice() Action {
	return m.choice
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		m.choice = menuItems[m.cursor].action
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.choice = ActionQuit
		return m, tea.Quit
	default:
		for i, item := range menuItems {
			if key.String() == item.hotkey {
				m.cursor = i
				m.choice = item.action
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ElizaOS Plugin Analyzer"))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := fmt.Sprintf("  %s  %s", dimStyle.Render("("+item.hotkey+")"), item.label)
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> (%s)  %s", item.hotkey, item.label))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("up/down to move, enter to select, q to quit"))
	b.WriteString("\n")
	return b.String()
}

// Run displays the menu and blocks until the operator picks an action.
func Run() (Action, error) {
	final, err := tea.NewProgram(NewMenu()).Run()
	if err != nil {
		return ActionNone, fmt.Errorf("running menu: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return ActionNone, fmt.Errorf("unexpected menu model type %T", final)
	}
	return m.Choice(), nil
}
