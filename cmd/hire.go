// ABOUTME: Hire command for the booksarc CLI
// ABOUTME: Sends a hire request for a catalog book

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
)

var (
	hireName   string
	hirePhone  string
	hirePickup string
	hireNotes  string
)

var hireCmd = &cobra.Command{
	Use:   "hire <book-id>",
	Short: "Request to hire a book",
	Long: `Send a hire request for a book. The owner approves or declines it on
their side; hiring requires an active subscription on your account.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHire(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(hireCmd)
	hireCmd.Flags().StringVar(&hireName, "name", "", "Full name (defaults to your account name)")
	hireCmd.Flags().StringVar(&hirePhone, "phone", "", "Contact phone number")
	hireCmd.Flags().StringVar(&hirePickup, "pickup-date", "", "Pickup date, YYYY-MM-DD (defaults to today)")
	hireCmd.Flags().StringVar(&hireNotes, "notes", "", "Note to the owner")
}

// runHire validates and submits a hire request, returning an exit code
func runHire(ctx context.Context, w io.Writer, bookID string) int {
	store := openSession()
	id := store.Current()
	if id == nil {
		fmt.Fprintln(w, "You must be logged in to hire a book. Run \"booksarc login\" first.")
		return exitBlocked
	}

	fullName := strings.TrimSpace(hireName)
	if fullName == "" {
		fullName = id.Username
	}
	pickup := hirePickup
	if pickup == "" {
		pickup = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", pickup); err != nil {
		fmt.Fprintln(w, "Error: --pickup-date must be YYYY-MM-DD")
		return exitError
	}

	req := &api.HireRequest{
		FullName:   fullName,
		Email:      id.Email,
		Phone:      hirePhone,
		PickupDate: pickup,
		Notes:      hireNotes,
	}

	receipt, err := newClient(store).HireBook(ctx, bookID, req)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrNotFound):
			fmt.Fprintln(w, "Book not found.")
			return exitFailed
		case errors.Is(err, api.ErrUnauthorized):
			fmt.Fprintln(w, "Hire request rejected: an active subscription is required.")
			fmt.Fprintln(w, "Activate one from your dashboard on the BooksArc website.")
			return exitFailed
		default:
			slog.Error("hire request failed", "book", bookID, "error", err)
			fmt.Fprintln(w, "Failed to send hire request.")
			return exitError
		}
	}

	fmt.Fprintf(w, "Hire request sent (status: %s). The owner will review it.\n", receipt.Status)
	return exitOK
}
