// ABOUTME: Show command for the booksarc CLI
// ABOUTME: Prints the details of a single catalog book

package cmd

import (
	"context"
	"encoding/json"
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

var showCmd = &cobra.Command{
	Use:   "show <book-id>",
	Short: "Show a single book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// runShow fetches and prints a book, returning an exit code
func runShow(ctx context.Context, w io.Writer, id string) int {
	store := openSession()
	c := newClient(store)

	book, err := c.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Fprintln(w, "Book not found.")
			return exitFailed
		}
		slog.Error("book fetch failed", "id", id, "error", err)
		fmt.Fprintln(w, "Failed to load book.")
		return exitError
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(book, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatBookHuman(book))
	}
	return exitOK
}

// formatBookHuman renders the book detail view
func formatBookHuman(b *api.Book) string {
	status := "Available"
	if !b.Available {
		status = "On loan"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nby %s\n\n", b.Title, b.Author)
	if b.Category != "" {
		fmt.Fprintf(&sb, "Category:  %s\n", b.Category)
	}
	fmt.Fprintf(&sb, "Location:  %s\n", b.Location)
	fmt.Fprintf(&sb, "Status:    %s\n", status)
	if b.OwnerName != "" {
		fmt.Fprintf(&sb, "Listed by: %s\n", b.OwnerName)
	}
	if !b.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "Listed on: %s\n", b.CreatedAt.Format("2 Jan 2006"))
	}
	if b.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", b.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}
