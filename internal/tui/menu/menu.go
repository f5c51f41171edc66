// ABOUTME: Main menu model for the TUI
// ABOUTME: Cursor list of application actions, aware of session state

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NewOlosko23/booksarc-cli/internal/tui/icons"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/styles"
)

// Action identifies a menu entry
type Action int

const (
	ActionBrowse Action = iota
	ActionPublish
	ActionDashboard
	ActionLogin
	ActionSignup
	ActionLogout
	ActionQuit
)

// ActionSelectedMsg is sent when the user confirms an entry
type ActionSelectedMsg struct {
	Action Action
}

// CancelledMsg is sent when the user quits from the menu
type CancelledMsg struct{}

type entry struct {
	label  string
	icon   icons.Icon
	action Action
}

// Menu is the main menu model
type Menu struct {
	entries []entry
	cursor  int
	width   int
}

// New builds the menu for the given session state
func New(loggedIn bool) *Menu {
	entries := []entry{
		{label: "Browse the catalog", icon: icons.Library, action: ActionBrowse},
	}
	if loggedIn {
		entries = append(entries,
			entry{label: "Publish a book", icon: icons.Publish, action: ActionPublish},
			entry{label: "My dashboard", icon: icons.User, action: ActionDashboard},
			entry{label: "Log out", icon: icons.Logout, action: ActionLogout},
		)
	} else {
		entries = append(entries,
			entry{label: "Log in", icon: icons.Login, action: ActionLogin},
			entry{label: "Sign up", icon: icons.User, action: ActionSignup},
		)
	}
	entries = append(entries, entry{label: "Quit", icon: icons.Quit, action: ActionQuit})
	return &Menu{entries: entries}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			selected := m.entries[m.cursor]
			if selected.action == ActionQuit {
				return m, func() tea.Msg { return CancelledMsg{} }
			}
			return m, func() tea.Msg { return ActionSelectedMsg{Action: selected.action} }
		case "q", "esc":
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}
	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("What would you like to do?"))
	sb.WriteString("\n\n")

	for i, e := range m.entries {
		line := fmt.Sprintf("%s %s", e.icon.String(), e.label)
		if i == m.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Selected returns the action under the cursor
func (m *Menu) Selected() Action {
	return m.entries[m.cursor].action
}
