// ABOUTME: Logout command for the booksarc CLI
// ABOUTME: Clears the stored session and the dashboard cache

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/NewOlosko23/booksarc-cli/internal/cache"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of BooksArc",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session; safe to call when already logged out
func runLogout(w io.Writer) int {
	store := openSession()
	id := store.Current()
	store.Logout()

	if id == nil {
		fmt.Fprintln(w, "Not logged in.")
		return exitOK
	}

	// Cached dashboard snapshots belong to the session that fetched them
	if db, err := cache.Open(cachePath()); err == nil {
		if err := db.Clear(context.Background(), id.ID); err != nil {
			slog.Debug("could not clear dashboard cache", "error", err)
		}
		db.Close()
	}

	fmt.Fprintf(w, "Logged out %s.\n", id.Email)
	return exitOK
}
