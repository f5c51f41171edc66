// ABOUTME: Login command for the booksarc CLI
// ABOUTME: Authenticates against the API and persists the session

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to BooksArc",
	Long: `Authenticate with your BooksArc account and store the session locally.
The password is prompted with echo disabled unless --password is given
(intended for scripts only).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, os.Stdin)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted if omitted)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
}

// runLogin executes the login flow and returns an exit code
func runLogin(ctx context.Context, w io.Writer, r io.Reader) int {
	store := openSession()
	if id := store.Current(); id != nil {
		fmt.Fprintf(w, "Already logged in as %s. Run \"booksarc logout\" first.\n", id.Email)
		return exitBlocked
	}

	in := bufio.NewReader(r)

	email := strings.TrimSpace(loginEmail)
	if email == "" {
		var err error
		email, err = promptLine(w, in, "Email: ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}
	if email == "" {
		fmt.Fprintln(w, "Error: email is required")
		return exitError
	}

	password := loginPassword
	if password == "" {
		var err error
		password, err = promptPassword(w, r, in, "Password: ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}
	if password == "" {
		fmt.Fprintln(w, "Error: password is required")
		return exitError
	}

	auth, err := newClient(store).Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(w, "Invalid email or password.")
			return exitFailed
		}
		slog.Error("login failed", "error", err)
		fmt.Fprintln(w, "Login failed. Try again later.")
		return exitError
	}

	store.Login(identityFromAuth(auth))
	fmt.Fprintf(w, "Logged in as %s.\n", auth.User.Email)
	return exitOK
}

// identityFromAuth builds the complete session record from an auth response
func identityFromAuth(auth *api.AuthResponse) session.Identity {
	return session.Identity{
		ID:           auth.User.ID,
		Username:     auth.User.Username,
		Email:        auth.User.Email,
		Token:        auth.Token,
		Subscription: auth.User.Subscription,
	}
}

// promptLine reads one trimmed line. The caller passes a single bufio.Reader
// per command run so read-ahead never swallows input meant for later prompts.
func promptLine(w io.Writer, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("input closed")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password with echo disabled when r is a terminal;
// otherwise it falls back to a plain line read from in (tests, pipes).
func promptPassword(w io.Writer, r io.Reader, in *bufio.Reader, prompt string) (string, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(w, prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return promptLine(w, in, prompt)
}
