// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/cache"
	"github.com/NewOlosko23/booksarc-cli/internal/config"
	"github.com/NewOlosko23/booksarc-cli/internal/geo"
	"github.com/NewOlosko23/booksarc-cli/internal/imaging"
	"github.com/NewOlosko23/booksarc-cli/internal/session"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/authform"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/browse"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/dashboard"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/detail"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/hire"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/icons"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/menu"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/publish"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenBrowse
	ScreenDetail
	ScreenLogin
	ScreenSignup
	ScreenHire
	ScreenPublish
	ScreenDashboard
)

// Layout constants
const (
	minTerminalWidth = 80
	contentOverhead  = 4 // header, blank line, blank line, footer
)

// booksLoadedMsg is sent when the catalog fetch completes. seq ties the
// response to the request that started it; a stale response is dropped.
type booksLoadedMsg struct {
	seq   int
	books []api.Book
	err   error
}

// authDoneMsg is sent when a login or signup round-trip completes
type authDoneMsg struct {
	mode authform.Mode
	auth *api.AuthResponse
	err  error
}

// hireSentMsg is sent when a hire request round-trip completes
type hireSentMsg struct {
	receipt *api.HireReceipt
	err     error
}

// publishedMsg is sent when a book listing round-trip completes
type publishedMsg struct {
	book *api.Book
	err  error
}

// dashboardLoadedMsg is sent when the dashboard snapshot is ready
type dashboardLoadedMsg struct {
	user   *api.UserDetail
	books  []api.Book
	cached bool
	err    error
}

// App is the root model for the TUI
type App struct {
	store      *session.Store
	cfg        *config.Config
	db         *cache.Cache // nil when the cache could not be opened
	screen     Screen
	pending    Screen // target screen after a login redirect
	hasPending bool
	width      int
	height     int
	statusLine string
	lastUpdate time.Time
	fetchSeq   int

	// Child models
	menuScreen    *menu.Menu
	browser       *browse.Browser
	detailView    *detail.Detail
	authScreen    *authform.Form
	hireScreen    *hire.Form
	publishWizard *publish.Wizard
	dash          *dashboard.Dashboard
}

// New creates a new TUI application
func New(store *session.Store, cfg *config.Config, db *cache.Cache) *App {
	return &App{
		store:      store,
		cfg:        cfg,
		db:         db,
		screen:     ScreenMenu,
		menuScreen: menu.New(store.Current() != nil),
	}
}

// client builds an API client carrying the current session token
func (a *App) client() *api.Client {
	c := api.New(a.cfg.APIURL)
	if id := a.store.Current(); id != nil {
		return c.WithToken(id.Token)
	}
	return c
}

func (a *App) loggedIn() bool {
	return a.store.Current() != nil
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.forwardSize(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.statusLine = ""
		return a.routeKey(msg)

	case menu.ActionSelectedMsg:
		return a.handleMenuAction(msg.Action)

	case menu.CancelledMsg:
		return a, tea.Quit

	case browse.BookSelectedMsg:
		a.detailView = detail.New(msg.Book)
		a.screen = ScreenDetail
		return a, nil

	case browse.RefreshRequestedMsg:
		return a, a.loadBooks()

	case browse.CancelledMsg:
		return a.gotoMenu()

	case detail.HireRequestedMsg:
		return a.navigate(ScreenHire, func() tea.Cmd {
			a.hireScreen = hire.New(msg.Book, a.store.Current())
			return a.hireScreen.Init()
		})

	case detail.CancelledMsg:
		a.screen = ScreenBrowse
		a.detailView = nil
		return a, nil

	case authform.SubmitMsg:
		if a.authScreen != nil {
			a.authScreen.SetBusy()
		}
		return a, a.authenticate(msg)

	case authform.CancelledMsg:
		a.hasPending = false
		return a.gotoMenu()

	case hire.SubmitMsg:
		return a, a.sendHire(msg)

	case hire.CancelledMsg:
		a.hireScreen = nil
		if a.detailView != nil {
			a.screen = ScreenDetail
		} else {
			return a.gotoMenu()
		}
		return a, nil

	case publish.CompleteMsg:
		return a, a.publishBook(msg)

	case publish.CancelledMsg:
		a.publishWizard = nil
		return a.gotoMenu()

	case booksLoadedMsg:
		return a.handleBooksLoaded(msg)

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case hireSentMsg:
		return a.handleHireSent(msg)

	case publishedMsg:
		return a.handlePublished(msg)

	case dashboardLoadedMsg:
		return a.handleDashboardLoaded(msg)

	default:
		// Forms need non-key messages for their internals
		return a.forwardToForm(msg)
	}
}

// forwardSize passes the new terminal size to every live child model
func (a *App) forwardSize(msg tea.WindowSizeMsg) {
	if a.menuScreen != nil {
		a.menuScreen.Update(msg)
	}
	if a.browser != nil {
		a.browser.Update(msg)
	}
	if a.detailView != nil {
		a.detailView.Update(msg)
	}
	if a.dash != nil {
		a.dash.SetSize(a.width-contentOverhead, a.contentHeight())
	}
	if a.authScreen != nil {
		a.authScreen.Update(msg)
	}
	if a.hireScreen != nil {
		a.hireScreen.Update(msg)
	}
	if a.publishWizard != nil {
		a.publishWizard.Update(msg)
	}
}

// routeKey sends a key press to the model owning the current screen
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenMenu:
		if a.menuScreen == nil {
			return a, nil
		}
		_, cmd := a.menuScreen.Update(msg)
		return a, cmd

	case ScreenBrowse:
		if a.browser == nil {
			return a, nil
		}
		_, cmd := a.browser.Update(msg)
		return a, cmd

	case ScreenDetail:
		if a.detailView == nil {
			return a, nil
		}
		_, cmd := a.detailView.Update(msg)
		return a, cmd

	case ScreenLogin, ScreenSignup:
		if a.authScreen == nil {
			return a, nil
		}
		_, cmd := a.authScreen.Update(msg)
		return a, cmd

	case ScreenHire:
		if a.hireScreen == nil {
			return a, nil
		}
		_, cmd := a.hireScreen.Update(msg)
		return a, cmd

	case ScreenPublish:
		if a.publishWizard == nil {
			return a, nil
		}
		_, cmd := a.publishWizard.Update(msg)
		return a, cmd

	case ScreenDashboard:
		return a.updateDashboard(msg)
	}
	return a, nil
}

// forwardToForm passes unrecognized messages to huh-backed screens
func (a *App) forwardToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin, ScreenSignup:
		if a.authScreen != nil {
			_, cmd := a.authScreen.Update(msg)
			return a, cmd
		}
	case ScreenHire:
		if a.hireScreen != nil {
			_, cmd := a.hireScreen.Update(msg)
			return a, cmd
		}
	case ScreenPublish:
		if a.publishWizard != nil {
			_, cmd := a.publishWizard.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		a.dash = nil
		return a, a.loadDashboard(true)
	case "esc", "b", "q":
		a.dash = nil
		return a.gotoMenu()
	}
	return a, nil
}

// navigate runs the guard for the target screen; enter builds the screen
// when access is allowed
func (a *App) navigate(target Screen, enter func() tea.Cmd) (tea.Model, tea.Cmd) {
	switch CheckAccess(target, a.loggedIn()) {
	case RedirectLogin:
		a.pending = target
		a.hasPending = true
		a.statusLine = "Log in to continue."
		a.authScreen = authform.New(authform.ModeLogin)
		a.screen = ScreenLogin
		return a, a.authScreen.Init()

	case RedirectDashboard:
		a.statusLine = "Already logged in."
		a.dash = nil
		a.screen = ScreenDashboard
		return a, a.loadDashboard(false)
	}

	a.screen = target
	if enter != nil {
		return a, enter()
	}
	return a, nil
}

func (a *App) gotoMenu() (tea.Model, tea.Cmd) {
	a.screen = ScreenMenu
	a.menuScreen = menu.New(a.loggedIn())
	return a, nil
}

func (a *App) handleMenuAction(action menu.Action) (tea.Model, tea.Cmd) {
	switch action {
	case menu.ActionBrowse:
		a.browser = browse.New(a.cfg.PageSize)
		a.screen = ScreenBrowse
		return a, a.loadBooks()

	case menu.ActionPublish:
		return a.navigate(ScreenPublish, func() tea.Cmd {
			a.publishWizard = publish.New(a.suggestLocation())
			return a.publishWizard.Init()
		})

	case menu.ActionDashboard:
		return a.navigate(ScreenDashboard, func() tea.Cmd {
			a.dash = nil
			return a.loadDashboard(false)
		})

	case menu.ActionLogin:
		return a.navigate(ScreenLogin, func() tea.Cmd {
			a.authScreen = authform.New(authform.ModeLogin)
			return a.authScreen.Init()
		})

	case menu.ActionSignup:
		return a.navigate(ScreenSignup, func() tea.Cmd {
			a.authScreen = authform.New(authform.ModeSignup)
			return a.authScreen.Init()
		})

	case menu.ActionLogout:
		if id := a.store.Current(); id != nil && a.db != nil {
			// Snapshots belong to the session that fetched them
			_ = a.db.Clear(context.Background(), id.ID)
		}
		a.store.Logout()
		a.statusLine = "Logged out."
		return a.gotoMenu()
	}
	return a, nil
}

// loadBooks fetches the catalog; the sequence number guards against a slow
// response landing after a newer refresh already started
func (a *App) loadBooks() tea.Cmd {
	a.fetchSeq++
	seq := a.fetchSeq
	client := a.client()
	return func() tea.Msg {
		books, err := client.ListBooks(context.Background())
		return booksLoadedMsg{seq: seq, books: books, err: err}
	}
}

func (a *App) handleBooksLoaded(msg booksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.fetchSeq {
		return a, nil
	}
	if a.browser == nil {
		return a, nil
	}
	if msg.err != nil {
		// The raw error goes to the log file, not the screen
		a.browser.SetError("Failed to load books.")
		return a, nil
	}
	a.browser.SetBooks(msg.books)
	a.lastUpdate = time.Now()
	return a, nil
}

func (a *App) authenticate(msg authform.SubmitMsg) tea.Cmd {
	client := a.client()
	return func() tea.Msg {
		var auth *api.AuthResponse
		var err error
		if msg.Mode == authform.ModeSignup {
			auth, err = client.Register(context.Background(), msg.Username, msg.Email, msg.Password)
		} else {
			auth, err = client.Login(context.Background(), msg.Email, msg.Password)
		}
		return authDoneMsg{mode: msg.Mode, auth: auth, err: err}
	}
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.authScreen != nil {
			text := "Invalid email or password."
			if msg.mode == authform.ModeSignup {
				text = "Signup rejected. The email may already be registered."
			}
			a.authScreen.SetError(text)
			return a, a.authScreen.Init()
		}
		return a, nil
	}

	a.store.Login(session.Identity{
		ID:           msg.auth.User.ID,
		Username:     msg.auth.User.Username,
		Email:        msg.auth.User.Email,
		Token:        msg.auth.Token,
		Subscription: msg.auth.User.Subscription,
	})
	a.authScreen = nil
	a.statusLine = "Logged in as " + msg.auth.User.Email + "."

	if a.hasPending {
		target := a.pending
		a.hasPending = false
		switch target {
		case ScreenHire:
			// The detail view still holds the book being hired
			if a.detailView != nil {
				return a.navigate(ScreenHire, func() tea.Cmd {
					a.hireScreen = hire.New(a.detailBook(), a.store.Current())
					return a.hireScreen.Init()
				})
			}
		case ScreenPublish:
			return a.navigate(ScreenPublish, func() tea.Cmd {
				a.publishWizard = publish.New(a.suggestLocation())
				return a.publishWizard.Init()
			})
		case ScreenDashboard:
			return a.navigate(ScreenDashboard, func() tea.Cmd {
				return a.loadDashboard(false)
			})
		}
	}
	return a.gotoMenu()
}

// detailBook returns the book shown on the detail screen
func (a *App) detailBook() api.Book {
	if a.detailView == nil {
		return api.Book{}
	}
	return a.detailView.Book()
}

func (a *App) sendHire(msg hire.SubmitMsg) tea.Cmd {
	client := a.client()
	id := a.store.Current()
	req := msg.Request
	if id != nil {
		req.Email = id.Email
	}
	return func() tea.Msg {
		receipt, err := client.HireBook(context.Background(), msg.BookID, &req)
		return hireSentMsg{receipt: receipt, err: err}
	}
}

func (a *App) handleHireSent(msg hireSentMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.hireScreen != nil {
			a.hireScreen.SetError("Could not send the hire request. An active subscription may be required.")
			return a, a.hireScreen.Init()
		}
		return a, nil
	}
	a.hireScreen = nil
	a.detailView = nil
	a.statusLine = fmt.Sprintf("Hire request sent (status: %s).", msg.receipt.Status)
	return a.gotoMenu()
}

func (a *App) publishBook(msg publish.CompleteMsg) tea.Cmd {
	client := a.client()
	return func() tea.Msg {
		book := *msg.Book
		if msg.CoverPath != "" {
			f, err := os.Open(msg.CoverPath)
			if err != nil {
				return publishedMsg{err: err}
			}
			cover, err := imaging.FitCover(f, imaging.MaxCoverWidth, imaging.MaxCoverHeight)
			f.Close()
			if err != nil {
				return publishedMsg{err: err}
			}
			book.CoverImage = cover
		}

		created, err := client.CreateBook(context.Background(), &book)
		return publishedMsg{book: created, err: err}
	}
}

func (a *App) handlePublished(msg publishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.publishWizard != nil {
			a.publishWizard.SetError("Failed to publish book.")
			return a, a.publishWizard.Init()
		}
		return a, nil
	}
	a.publishWizard = nil
	a.statusLine = fmt.Sprintf("Published %q.", msg.book.Title)
	return a.gotoMenu()
}

// loadDashboard fetches the account snapshot, preferring the local cache
func (a *App) loadDashboard(force bool) tea.Cmd {
	client := a.client()
	id := a.store.Current()
	db := a.db
	return func() tea.Msg {
		if id == nil {
			return dashboardLoadedMsg{err: fmt.Errorf("no session")}
		}
		ctx := context.Background()

		fetchUser := func(ctx context.Context) (*api.UserDetail, error) {
			return client.User(ctx, id.ID)
		}
		fetchBooks := func(ctx context.Context) ([]api.Book, error) {
			return client.UserBooks(ctx, id.ID)
		}

		var (
			user    *api.UserDetail
			books   []api.Book
			cachedA bool
			cachedB bool
			err     error
		)
		if db != nil {
			user, cachedA, err = db.UserDetail(ctx, id.ID, force, fetchUser)
			if err == nil {
				books, cachedB, err = db.OwnedBooks(ctx, id.ID, force, fetchBooks)
			}
		} else {
			user, err = fetchUser(ctx)
			if err == nil {
				books, err = fetchBooks(ctx)
			}
		}
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{user: user, books: books, cached: cachedA && cachedB}
	}
}

func (a *App) handleDashboardLoaded(msg dashboardLoadedMsg) (tea.Model, tea.Cmd) {
	if a.screen != ScreenDashboard {
		return a, nil
	}
	if msg.err != nil {
		a.statusLine = "Failed to load dashboard."
		return a.gotoMenu()
	}
	a.dash = dashboard.New(msg.user, msg.books, msg.cached, a.width-contentOverhead, a.contentHeight())
	a.lastUpdate = time.Now()
	return a, nil
}

// suggestLocation resolves configured coordinates to an area name
func (a *App) suggestLocation() string {
	if !a.cfg.HasCoordinates {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return geo.New(a.cfg.GeocodeURL).ResolveArea(ctx, a.cfg.Latitude, a.cfg.Longitude)
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenMenu:
		content = a.viewMenu()
	case ScreenBrowse:
		if a.browser != nil {
			content = a.browser.View()
		}
	case ScreenDetail:
		if a.detailView != nil {
			content = a.detailView.View()
		}
	case ScreenLogin, ScreenSignup:
		if a.authScreen != nil {
			content = a.authScreen.View()
		}
	case ScreenHire:
		if a.hireScreen != nil {
			content = a.hireScreen.View()
		}
	case ScreenPublish:
		if a.publishWizard != nil {
			content = a.publishWizard.View()
		}
	case ScreenDashboard:
		if a.dash != nil {
			content = a.dash.View()
		} else {
			content = styles.Subtitle.Render("Loading dashboard...")
		}
	default:
		content = a.viewMenu()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewMenu() string {
	var sb strings.Builder
	if a.statusLine != "" {
		sb.WriteString(styles.Subtitle.Render(a.statusLine))
		sb.WriteString("\n\n")
	}
	if a.menuScreen != nil {
		sb.WriteString(a.menuScreen.View())
	}
	return sb.String()
}

// contentHeight calculates the height available below the frame
func (a *App) contentHeight() int {
	return a.height - contentOverhead
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("BooksArc"))

	rightText := ""
	if id := a.store.Current(); id != nil {
		rightText = contextStyle.Render(id.Username) + " "
	} else {
		rightText = contextStyle.Render("not logged in") + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for the corners
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenBrowse:
		shortcuts = []string{"/ Search", "a Availability", "c Category", "←→ Page", "Enter Open", "b Back"}
	case ScreenDetail:
		shortcuts = []string{"h Hire", "b Back"}
	case ScreenLogin, ScreenSignup, ScreenHire, ScreenPublish:
		shortcuts = []string{"Enter Confirm", "Esc Cancel"}
	case ScreenDashboard:
		shortcuts = []string{"r Refresh", "b Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// Run starts the TUI
func Run(store *session.Store, cfg *config.Config, db *cache.Cache) error {
	app := New(store, cfg, db)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
