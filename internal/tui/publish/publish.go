// ABOUTME: Book publishing wizard as a bubbletea model
// ABOUTME: Three huh steps for details, pickup location, and cover image

package publish

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/icons"
	"github.com/NewOlosko23/booksarc-cli/internal/tui/styles"
)

// CompleteMsg is sent when the wizard finishes; CoverPath may be empty
type CompleteMsg struct {
	Book      *api.NewBook
	CoverPath string
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// Step names for the progress indicator
var stepNames = []string{"Details", "Location", "Cover"}

// Wizard walks through listing a book
type Wizard struct {
	form  *huh.Form
	step  int
	width int

	title       string
	author      string
	category    string
	description string
	location    string
	coverPath   string

	errText string
	busy    bool
}

// New creates the wizard; suggestedLocation prefills step 2 when non-empty
func New(suggestedLocation string) *Wizard {
	w := &Wizard{
		step:     1,
		location: suggestedLocation,
	}
	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(120).
				Value(&w.title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Author").
				CharLimit(80).
				Value(&w.author).
				Validate(validateRequired("author")),
			huh.NewInput().
				Title("Category").
				Description("e.g. Fiction, History; optional").
				CharLimit(40).
				Value(&w.category),
			huh.NewText().
				Title("Description").
				CharLimit(1000).
				Value(&w.description),
		).Title("Step 1: Book details"),
	).WithTheme(huh.ThemeBase())
}

func (w *Wizard) createStep2Form() *huh.Form {
	desc := "Where can the book be picked up?"
	if w.location != "" {
		desc = "Suggested from your coordinates; edit if it is off"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pickup area").
				Description(desc).
				CharLimit(80).
				Value(&w.location).
				Validate(validateRequired("pickup area")),
		).Title("Step 2: Location"),
	).WithTheme(huh.ThemeBase())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cover image path").
				Description("JPEG, PNG, or GIF; leave empty for no cover").
				CharLimit(256).
				Value(&w.coverPath).
				Validate(validateCoverPath),
		).Title("Step 3: Cover image"),
	).WithTheme(huh.ThemeBase())
}

// SetError shows a server-side failure and restarts the last step
func (w *Wizard) SetError(text string) {
	w.errText = text
	w.busy = false
	w.step = 3
	w.form = w.createStep3Form()
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
	}
	if w.busy {
		return w, nil
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.busy = true
		complete := CompleteMsg{
			Book: &api.NewBook{
				Title:       strings.TrimSpace(w.title),
				Author:      strings.TrimSpace(w.author),
				Category:    strings.TrimSpace(w.category),
				Description: strings.TrimSpace(w.description),
				Location:    strings.TrimSpace(w.location),
			},
			CoverPath: strings.TrimSpace(w.coverPath),
		}
		return w, func() tea.Msg { return complete }
	}

	return w, nil
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Publish.String() + " Publish a book"))
	sb.WriteString("\n")
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if w.errText != "" {
		sb.WriteString(styles.StatusCritical.Render(w.errText))
		sb.WriteString("\n\n")
	}
	if w.busy {
		sb.WriteString(styles.Subtitle.Render("Publishing..."))
		sb.WriteString("\n\n")
	}

	sb.WriteString(w.form.View())
	sb.WriteString(styles.Help.Render("\nesc cancel"))
	return sb.String()
}

// renderProgress renders the step indicator line
func (w *Wizard) renderProgress() string {
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	return strings.Join(steps, "    ")
}

func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// validateCoverPath accepts an empty path or one that points at a readable file
func validateCoverPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("file not found")
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory")
	}
	return nil
}
