// ABOUTME: Ping command for the booksarc CLI
// ABOUTME: Checks API reachability and warms up the hosted server

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the BooksArc API is reachable",
	Long: `Check that the BooksArc API is reachable. The hosted backend spins down
when idle, so the first ping after a quiet period can take a while; this
command doubles as a warm-up before browsing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPing(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

// runPing checks reachability and returns an exit code
func runPing(ctx context.Context, w io.Writer) int {
	start := time.Now()
	if err := newClient(openSession()).Ping(ctx); err != nil {
		slog.Error("ping failed", "url", GetAPIURL(), "error", err)
		fmt.Fprintf(w, "%s is not responding.\n", GetAPIURL())
		return exitError
	}
	fmt.Fprintf(w, "%s is up (%s).\n", GetAPIURL(), time.Since(start).Round(time.Millisecond))
	return exitOK
}
