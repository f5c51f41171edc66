// ABOUTME: Book detail view for the TUI
// ABOUTME: Renders one catalog entry and offers the hire action

package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/icons"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/styles"
)

// HireRequestedMsg is sent when the user wants to hire the shown book
type HireRequestedMsg struct {
	Book api.Book
}

// CancelledMsg is sent when the user goes back to the catalog
type CancelledMsg struct{}

// Detail shows a single book
type Detail struct {
	book  api.Book
	width int
}

// New creates a detail view for the given book
func New(book api.Book) *Detail {
	return &Detail{book: book}
}

// Book returns the book being shown
func (d *Detail) Book() api.Book {
	return d.book
}

// Init implements tea.Model
func (d *Detail) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "h":
			if d.book.Available {
				book := d.book
				return d, func() tea.Msg { return HireRequestedMsg{Book: book} }
			}
		case "esc", "b", "q":
			return d, func() tea.Msg { return CancelledMsg{} }
		}
	}
	return d, nil
}

// View implements tea.Model
func (d *Detail) View() string {
	var sb strings.Builder
	b := d.book

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icons.Book.String(), b.Title)))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s %s\n", icons.Author.String(), b.Author))
	if b.Category != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", icons.Category.String(), b.Category))
	}
	if b.Location != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", icons.Location.String(), b.Location))
	}
	if b.OwnerName != "" {
		sb.WriteString(fmt.Sprintf("%s listed by %s\n", icons.User.String(), b.OwnerName))
	}
	sb.WriteString("Status: " + styles.AvailabilityBadge(b.Available) + "\n")

	if b.Description != "" {
		sb.WriteString("\n" + b.Description + "\n")
	}

	if b.Available {
		sb.WriteString(styles.Help.Render("\nh hire this book"))
	} else {
		sb.WriteString(styles.Help.Render("\ncurrently on loan"))
	}
	return sb.String()
}
