// ABOUTME: Dashboard command for the booksarc CLI
// ABOUTME: Shows account details and owned books from a cached snapshot

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/cache"
)

var dashboardRefresh bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your account and listed books",
	Long: `Show your account details, subscription, and the books you have listed.
Results are cached locally; pass --refresh to force a refetch.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboard(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().BoolVar(&dashboardRefresh, "refresh", false, "Bypass the local cache and refetch")
}

// dashboardOutput is the JSON shape of the dashboard report
type dashboardOutput struct {
	User   *api.UserDetail `json:"user"`
	Books  []api.Book      `json:"books"`
	Cached bool            `json:"cached"`
}

// runDashboard fetches the user detail and owned books, preferring the
// local snapshot, and returns an exit code
func runDashboard(ctx context.Context, w io.Writer) int {
	store := openSession()
	id := store.Current()
	if id == nil {
		fmt.Fprintln(w, "You must be logged in to view your dashboard. Run \"booksarc login\" first.")
		return exitBlocked
	}

	client := newClient(store)

	db, err := cache.Open(cachePath())
	if err != nil {
		// The cache is an optimization; a broken database never blocks
		// the dashboard, it just means every load hits the network.
		slog.Warn("dashboard cache unavailable", "error", err)
	} else {
		defer db.Close()
	}

	var (
		detail     *api.UserDetail
		books      []api.Book
		fromCacheA bool
		fromCacheB bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, fromCacheA, err = fetchUserDetail(gctx, db, client, id.ID)
		return err
	})
	g.Go(func() error {
		var err error
		books, fromCacheB, err = fetchOwnedBooks(gctx, db, client, id.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("dashboard load failed", "user", id.ID, "error", err)
		fmt.Fprintln(w, "Failed to load dashboard.")
		return exitError
	}

	cached := fromCacheA && fromCacheB
	if IsJSONOutput() {
		fmt.Fprintln(w, formatDashboardJSON(detail, books, cached))
	} else {
		fmt.Fprintln(w, formatDashboardHuman(detail, books, cached))
	}
	return exitOK
}

func fetchUserDetail(ctx context.Context, db *cache.Cache, client *api.Client, userID string) (*api.UserDetail, bool, error) {
	fetch := func(ctx context.Context) (*api.UserDetail, error) {
		return client.User(ctx, userID)
	}
	if db == nil {
		d, err := fetch(ctx)
		return d, false, err
	}
	return db.UserDetail(ctx, userID, dashboardRefresh, fetch)
}

func fetchOwnedBooks(ctx context.Context, db *cache.Cache, client *api.Client, userID string) ([]api.Book, bool, error) {
	fetch := func(ctx context.Context) ([]api.Book, error) {
		return client.UserBooks(ctx, userID)
	}
	if db == nil {
		b, err := fetch(ctx)
		return b, false, err
	}
	return db.OwnedBooks(ctx, userID, dashboardRefresh, fetch)
}

func formatDashboardHuman(detail *api.UserDetail, books []api.Book, cached bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s <%s>\n", detail.Username, detail.Email)
	if detail.Subscription != nil && detail.Subscription.Status != "" {
		fmt.Fprintf(&b, "Subscription: %s (%s)\n", detail.Subscription.Plan, detail.Subscription.Status)
	} else {
		fmt.Fprintln(&b, "Subscription: none")
	}

	fmt.Fprintf(&b, "\nYour books (%d):\n", len(books))
	if len(books) == 0 {
		fmt.Fprintln(&b, "  none listed yet; run \"booksarc publish\" to add one")
	}
	for _, book := range books {
		status := "available"
		if !book.Available {
			status = "on loan"
		}
		fmt.Fprintf(&b, "  %-12s %s by %s (%s)\n", book.ID, truncate(book.Title, 40), truncate(book.Author, 25), status)
	}

	if cached {
		fmt.Fprint(&b, "\n(cached; use --refresh to refetch)")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDashboardJSON(detail *api.UserDetail, books []api.Book, cached bool) string {
	out := dashboardOutput{User: detail, Books: books, Cached: cached}
	if out.Books == nil {
		out.Books = []api.Book{}
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data)
}
