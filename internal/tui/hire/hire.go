// ABOUTME: Hire request form as a bubbletea model
// ABOUTME: Prefills contact details from the active session

package hire

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/session"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/icons"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/styles"
)

// SubmitMsg is sent when the form completes
type SubmitMsg struct {
	BookID  string
	Request api.HireRequest
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// Form collects the hire request details
type Form struct {
	book api.Book
	form *huh.Form

	fullName string
	phone    string
	pickup   string
	notes    string

	errText string
	busy    bool
}

// New creates a hire form for the given book, prefilled from the session
func New(book api.Book, id *session.Identity) *Form {
	f := &Form{
		book:   book,
		pickup: time.Now().Format("2006-01-02"),
	}
	if id != nil {
		f.fullName = id.Username
	}
	f.form = f.createForm()
	return f
}

func (f *Form) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				CharLimit(80).
				Value(&f.fullName).
				Validate(validateRequired("full name")),
			huh.NewInput().
				Title("Phone").
				CharLimit(30).
				Value(&f.phone),
			huh.NewInput().
				Title("Pickup date").
				Description("YYYY-MM-DD").
				CharLimit(10).
				Value(&f.pickup).
				Validate(validateDate),
			huh.NewText().
				Title("Note to the owner").
				CharLimit(500).
				Value(&f.notes),
		).Title(fmt.Sprintf("Hire %q", f.book.Title)),
	).WithTheme(huh.ThemeBase())
}

// SetError shows a server-side failure and re-arms the form
func (f *Form) SetError(text string) {
	f.errText = text
	f.busy = false
	f.form = f.createForm()
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}
	if f.busy {
		return f, nil
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.busy = true
		submit := SubmitMsg{
			BookID: f.book.ID,
			Request: api.HireRequest{
				FullName:   strings.TrimSpace(f.fullName),
				Phone:      strings.TrimSpace(f.phone),
				PickupDate: f.pickup,
				Notes:      strings.TrimSpace(f.notes),
			},
		}
		return f, func() tea.Msg { return submit }
	}

	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Hire.String() + " Hire request"))
	sb.WriteString("\n")
	if f.errText != "" {
		sb.WriteString(styles.StatusCritical.Render(f.errText))
		sb.WriteString("\n\n")
	}
	if f.busy {
		sb.WriteString(styles.Subtitle.Render("Sending request..."))
		sb.WriteString("\n\n")
	}
	sb.WriteString(f.form.View())
	sb.WriteString(styles.Help.Render("\nesc cancel"))
	return sb.String()
}

func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use the YYYY-MM-DD format")
	}
	return nil
}
