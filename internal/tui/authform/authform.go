// ABOUTME: Login and signup forms as bubbletea models
// ABOUTME: Wraps huh forms and emits credentials when completed

package authform

import (
	"fmt"
	"net/mail"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/NewOlosko23/booksarc-cli/internal/tui/styles"
)

// Mode selects which form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// SubmitMsg is sent when the form completes with valid values
type SubmitMsg struct {
	Mode     Mode
	Username string
	Email    string
	Password string
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// Form is the credentials form model
type Form struct {
	mode Mode
	form *huh.Form

	username string
	email    string
	password string

	errText string
	busy    bool
}

// New creates a login or signup form
func New(mode Mode) *Form {
	f := &Form{mode: mode}
	f.form = f.createForm()
	return f
}

func (f *Form) createForm() *huh.Form {
	fields := []huh.Field{}
	if f.mode == ModeSignup {
		fields = append(fields,
			huh.NewInput().
				Title("Username").
				CharLimit(60).
				Value(&f.username).
				Validate(validateRequired("username")),
		)
	}
	fields = append(fields,
		huh.NewInput().
			Title("Email").
			CharLimit(120).
			Value(&f.email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			CharLimit(120).
			Value(&f.password).
			Validate(validatePassword),
	)

	title := "Log in to BooksArc"
	if f.mode == ModeSignup {
		title = "Create a BooksArc account"
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).WithTheme(huh.ThemeBase())
}

// SetError shows a server-side failure and re-arms the form
func (f *Form) SetError(text string) {
	f.errText = text
	f.busy = false
	f.form = f.createForm()
}

// SetBusy marks the form as waiting on the server
func (f *Form) SetBusy() {
	f.busy = true
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
			Mode:     f.mode,
			Username: strings.TrimSpace(f.username),
			Email:    strings.TrimSpace(f.email),
			Password: f.password,
		}
		return f, func() tea.Msg { return submit }
	}

	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	if f.errText != "" {
		sb.WriteString(styles.StatusCritical.Render(f.errText))
		sb.WriteString("\n\n")
	}
	if f.busy {
		sb.WriteString(styles.Subtitle.Render("Contacting server..."))
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

func validateEmail(s string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}
