// ABOUTME: Signup command for the booksarc CLI
// ABOUTME: Registers a new account and persists the resulting session

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

	"github.com/NewOlosko23/booksarc-cli/internal/api"
)

var (
	signupUsername string
	signupEmail    string
	signupPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a BooksArc account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSignup(ctx, os.Stdout, os.Stdin)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupUsername, "username", "", "Display name (prompted if omitted)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email (prompted if omitted)")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Account password (prompted if omitted)")
}

// runSignup executes the registration flow and returns an exit code
func runSignup(ctx context.Context, w io.Writer, r io.Reader) int {
	store := openSession()
	if id := store.Current(); id != nil {
		fmt.Fprintf(w, "Already logged in as %s. Run \"booksarc logout\" first.\n", id.Email)
		return exitBlocked
	}

	username := strings.TrimSpace(signupUsername)
	email := strings.TrimSpace(signupEmail)
	password := signupPassword

	in := bufio.NewReader(r)

	var err error
	if username == "" {
		if username, err = promptLine(w, in, "Username: "); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}
	if email == "" {
		if email, err = promptLine(w, in, "Email: "); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}
	if password == "" {
		if password, err = promptPassword(w, r, in, "Password: "); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}

	// Validate before any network call
	if username == "" || email == "" || password == "" {
		fmt.Fprintln(w, "Error: username, email, and password are required")
		return exitError
	}
	if len(password) < 6 {
		fmt.Fprintln(w, "Error: password must be at least 6 characters")
		return exitError
	}

	auth, err := newClient(store).Register(ctx, username, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(w, "Signup rejected. The email may already be registered.")
			return exitFailed
		}
		slog.Error("signup failed", "error", err)
		fmt.Fprintln(w, "Signup failed. Try again later.")
		return exitError
	}

	store.Login(identityFromAuth(auth))
	fmt.Fprintf(w, "Welcome to BooksArc, %s. You are now logged in.\n", auth.User.Username)
	return exitOK
}
