// ABOUTME: Catalog browser TUI component with search, filters, and paging
// ABOUTME: Filters the loaded catalog locally and pages through the results

package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/catalog"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/icons"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/styles"
)

// BookSelectedMsg is sent when the user opens a catalog entry
type BookSelectedMsg struct {
	Book api.Book
}

// RefreshRequestedMsg is sent when the user asks for a catalog refetch
type RefreshRequestedMsg struct{}

// CancelledMsg is sent when the user leaves the browser
type CancelledMsg struct{}

// availability filter cycle: any -> available -> on loan -> any
var availabilityCycle = []string{
	catalog.AvailabilityAny,
	catalog.AvailabilityTrue,
	catalog.AvailabilityFalse,
}

// Browser is the catalog browsing component
type Browser struct {
	books    []api.Book // full catalog, newest first
	criteria catalog.Criteria
	pageSize int
	page     int
	cursor   int

	searching  bool
	search     textinput.Model
	categories []string
	catIndex   int // 0 means no category filter
	availIndex int

	loading bool
	errText string
	width   int
	height  int
}

// New creates a catalog browser; books arrive later via SetBooks
func New(pageSize int) *Browser {
	ti := textinput.New()
	ti.Placeholder = "title, author, or owner"
	ti.CharLimit = 80
	ti.Width = 40

	return &Browser{
		pageSize: pageSize,
		page:     1,
		search:   ti,
		loading:  true,
	}
}

// SetBooks replaces the catalog and re-clamps the current page
func (b *Browser) SetBooks(books []api.Book) {
	b.books = books
	b.categories = catalog.Categories(books)
	if b.catIndex > len(b.categories) {
		b.catIndex = 0
	}
	b.loading = false
	b.errText = ""
	b.clamp()
}

// SetError puts the browser into an error state
func (b *Browser) SetError(text string) {
	b.loading = false
	b.errText = text
}

// SetLoading shows the loading placeholder until SetBooks or SetError
func (b *Browser) SetLoading() {
	b.loading = true
	b.errText = ""
}

// Init implements tea.Model
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case tea.KeyMsg:
		if b.searching {
			return b.updateSearch(msg)
		}
		return b.updateList(msg)
	}
	return b, nil
}

func (b *Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		b.searching = false
		b.search.Blur()
		b.applyCriteria()
		return b, nil
	case "esc":
		b.searching = false
		b.search.Blur()
		b.search.SetValue(b.criteria.Keyword)
		return b, nil
	}

	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	return b, cmd
}

func (b *Browser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		b.searching = true
		return b, b.search.Focus()

	case "a":
		b.availIndex = (b.availIndex + 1) % len(availabilityCycle)
		b.applyCriteria()

	case "c":
		// Cycle through discovered categories; 0 is "all"
		b.catIndex = (b.catIndex + 1) % (len(b.categories) + 1)
		b.applyCriteria()

	case "x":
		b.search.SetValue("")
		b.availIndex = 0
		b.catIndex = 0
		b.applyCriteria()

	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}

	case "down", "j":
		if b.cursor < len(b.pageItems())-1 {
			b.cursor++
		}

	case "left", "h":
		if b.page > 1 {
			b.page--
			b.cursor = 0
		}

	case "right", "l":
		if _, pageCount := b.paginate(); b.page < pageCount {
			b.page++
			b.cursor = 0
		}

	case "enter":
		items := b.pageItems()
		if b.cursor < len(items) {
			selected := items[b.cursor]
			return b, func() tea.Msg { return BookSelectedMsg{Book: selected} }
		}

	case "r":
		b.SetLoading()
		return b, func() tea.Msg { return RefreshRequestedMsg{} }

	case "esc", "b", "q":
		return b, func() tea.Msg { return CancelledMsg{} }
	}

	return b, nil
}

// applyCriteria rebuilds the criteria from the UI state and resets paging
func (b *Browser) applyCriteria() {
	b.criteria = catalog.Criteria{
		Keyword:      strings.TrimSpace(b.search.Value()),
		Availability: availabilityCycle[b.availIndex],
	}
	if b.catIndex > 0 && b.catIndex <= len(b.categories) {
		b.criteria.Category = b.categories[b.catIndex-1]
	}
	b.page = 1
	b.cursor = 0
	b.clamp()
}

func (b *Browser) filtered() []api.Book {
	return catalog.Apply(b.books, b.criteria)
}

func (b *Browser) paginate() ([]api.Book, int) {
	return catalog.Paginate(b.filtered(), b.pageSize, b.page)
}

func (b *Browser) pageItems() []api.Book {
	items, _ := b.paginate()
	return items
}

func (b *Browser) clamp() {
	_, pageCount := catalog.Paginate(b.filtered(), b.pageSize, 1)
	b.page = catalog.ClampPage(b.page, pageCount)
	if items := b.pageItems(); b.cursor >= len(items) {
		b.cursor = 0
	}
}

// View implements tea.Model
func (b *Browser) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Library.String() + " Catalog"))
	sb.WriteString("\n")
	sb.WriteString(b.renderFilterLine())
	sb.WriteString("\n\n")

	switch {
	case b.loading:
		sb.WriteString(styles.Subtitle.Render("Loading catalog..."))
	case b.errText != "":
		sb.WriteString(styles.StatusCritical.Render(b.errText))
	default:
		sb.WriteString(b.renderList())
	}

	return sb.String()
}

func (b *Browser) renderFilterLine() string {
	if b.searching {
		return icons.Search.String() + " " + b.search.View()
	}

	parts := []string{}
	if b.criteria.Keyword != "" {
		parts = append(parts, fmt.Sprintf("search: %q", b.criteria.Keyword))
	}
	if b.criteria.Category != "" {
		parts = append(parts, "category: "+b.criteria.Category)
	}
	switch availabilityCycle[b.availIndex] {
	case catalog.AvailabilityTrue:
		parts = append(parts, "available only")
	case catalog.AvailabilityFalse:
		parts = append(parts, "on loan only")
	}
	if len(parts) == 0 {
		return styles.Subtitle.Render("no filters (/ search, a availability, c category)")
	}
	return styles.Subtitle.Render(strings.Join(parts, "  ·  ") + "  (x clears)")
}

func (b *Browser) renderList() string {
	filteredBooks := b.filtered()
	items, pageCount := catalog.Paginate(filteredBooks, b.pageSize, b.page)

	if len(items) == 0 {
		return styles.Subtitle.Render("No books match.")
	}

	var sb strings.Builder
	for i, book := range items {
		line := fmt.Sprintf("%s %-40s %-25s %s",
			icons.Book.String(), truncate(book.Title, 40), truncate(book.Author, 25),
			styles.AvailabilityBadge(book.Available))
		if i == b.cursor {
			sb.WriteString(styles.Selected.Render("> ") + line)
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(b.renderPager(pageCount))
	sb.WriteString(styles.Help.Render(fmt.Sprintf("\n%d book(s)", len(filteredBooks))))
	return sb.String()
}

// renderPager draws the page strip, eliding runs of pages far from the
// current one the same way the web pagination bar does
func (b *Browser) renderPager(pageCount int) string {
	if pageCount <= 1 {
		return ""
	}

	var parts []string
	for _, p := range catalog.PageWindow(b.page, pageCount) {
		switch {
		case p == catalog.Ellipsis:
			parts = append(parts, styles.Subtitle.Render("…"))
		case p == b.page:
			parts = append(parts, styles.Selected.Render(fmt.Sprintf("[%d]", p)))
		default:
			parts = append(parts, fmt.Sprintf(" %d ", p))
		}
	}
	return strings.Join(parts, " ")
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
