// ABOUTME: Password commands for the booksarc CLI
// ABOUTME: Requests a reset email and applies a reset token

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

var resetPassword string

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Manage your account password",
}

var passwordForgotCmd = &cobra.Command{
	Use:   "forgot <email>",
	Short: "Request a password reset email",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPasswordForgot(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset <token>",
	Short: "Set a new password using a reset token",
	Long: `Set a new password using the token from the reset email. The new
password is prompted with echo disabled unless --password is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPasswordReset(ctx, os.Stdout, os.Stdin, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.AddCommand(passwordForgotCmd)
	passwordCmd.AddCommand(passwordResetCmd)
	passwordResetCmd.Flags().StringVar(&resetPassword, "password", "", "New password (prompted if omitted)")
}

// runPasswordForgot asks the server to email a reset link
func runPasswordForgot(ctx context.Context, w io.Writer, email string) int {
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Fprintln(w, "Error: email is required")
		return exitError
	}

	store := openSession()
	if err := newClient(store).ForgotPassword(ctx, email); err != nil {
		slog.Error("password reset request failed", "error", err)
		fmt.Fprintln(w, "Could not request a password reset. Try again later.")
		return exitError
	}

	// The server answers the same way whether or not the address is
	// registered, so no account enumeration happens here either.
	fmt.Fprintf(w, "If %s is registered, a reset email is on its way.\n", email)
	return exitOK
}

// runPasswordReset applies a new password using the emailed token
func runPasswordReset(ctx context.Context, w io.Writer, r io.Reader, token string) int {
	password := resetPassword
	if password == "" {
		var err error
		password, err = promptPassword(w, r, bufio.NewReader(r), "New password: ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}
	if len(password) < 6 {
		fmt.Fprintln(w, "Error: password must be at least 6 characters")
		return exitError
	}

	store := openSession()
	if err := newClient(store).ResetPassword(ctx, token, password); err != nil {
		if errors.Is(err, api.ErrNotFound) || errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(w, "Reset token is invalid or expired. Request a new one.")
			return exitFailed
		}
		slog.Error("password reset failed", "error", err)
		fmt.Fprintln(w, "Could not reset the password. Try again later.")
		return exitError
	}

	fmt.Fprintln(w, "Password updated. Log in with the new password.")
	return exitOK
}
