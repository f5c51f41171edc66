// ABOUTME: UI command for the booksarc CLI
// ABOUTME: Launches the full-screen terminal interface

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/NewOlosko23/booksarc-cli/internal/cache"
	"github.com/NewOlosko23/booksarc-cli/internal/config"
	"github.com/NewOlosko23/booksarc-cli/internal/logger"
	"github.com/NewOlosko23/booksarc-cli/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the full-screen interface",
	Long: `Open the full-screen terminal interface: browse the catalog, view book
details, manage your session, publish books, and send hire requests.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runUI(os.Stderr)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

// runUI starts the TUI and returns an exit code
func runUI(errW *os.File) int {
	// Logging on stderr would tear the alternate screen apart, so the TUI
	// writes its log to a file instead
	logFile := logger.InitFile(tuiLogPath())
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Load()
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	store := openSession()

	db, err := cache.Open(cachePath())
	if err != nil {
		slog.Warn("dashboard cache unavailable", "error", err)
		db = nil
	} else {
		defer db.Close()
	}

	if err := tui.Run(store, cfg, db); err != nil {
		slog.Error("tui exited with error", "error", err)
		fmt.Fprintf(errW, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
