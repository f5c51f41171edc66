// ABOUTME: Dashboard component displaying the account and owned books
// ABOUTME: Renders the cached snapshot in the TUI

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/icons"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/styles"
)

// Dashboard displays the account snapshot
type Dashboard struct {
	user   *api.UserDetail
	books  []api.Book
	cached bool
	width  int
	height int
}

// New creates a dashboard with the loaded snapshot
func New(user *api.UserDetail, books []api.Book, cached bool, width, height int) *Dashboard {
	return &Dashboard{
		user:   user,
		books:  books,
		cached: cached,
		width:  width,
		height: height,
	}
}

// Update refreshes the dashboard with new data
func (d *Dashboard) Update(user *api.UserDetail, books []api.Book, cached bool) {
	d.user = user
	d.books = books
	d.cached = cached
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.user == nil {
		return styles.Panel.Width(d.width).Render("Loading dashboard...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.User.String() + " " + d.user.Username))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(d.user.Email))
	sb.WriteString("\n\n")

	if d.user.Subscription != nil && d.user.Subscription.Status != "" {
		sb.WriteString(fmt.Sprintf("Subscription: %s (%s)\n",
			d.user.Subscription.Plan,
			styles.StatusOK.Render(d.user.Subscription.Status)))
	} else {
		sb.WriteString("Subscription: " + styles.Subtitle.Render("none") + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s Your books (%d)\n", icons.Library.String(), len(d.books)))
	if len(d.books) == 0 {
		sb.WriteString(styles.Subtitle.Render("  none listed yet"))
		sb.WriteString("\n")
	}
	for _, book := range d.books {
		sb.WriteString(fmt.Sprintf("  %s %s by %s  %s\n",
			icons.Book.String(), book.Title, book.Author,
			styles.AvailabilityBadge(book.Available)))
	}

	if d.cached {
		sb.WriteString(styles.Help.Render("\ncached snapshot; r refetches"))
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}
