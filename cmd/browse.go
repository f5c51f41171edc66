// ABOUTME: Browse command for the booksarc CLI
// ABOUTME: Fetches the catalog, filters it locally, and prints one page

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

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/catalog"
	"github.com/NewOlosko23/booksarc-cli/internal/config"
)

var (
	browseSearch    string
	browseLocation  string
	browseCategory  string
	browseAvailable string
	browsePage      int
	browsePageSize  int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the book catalog",
	Long: `Fetch the BooksArc catalog and print one page of it, newest listings
first. Filters are applied locally and combine with AND.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBrowse(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVar(&browseSearch, "search", "", "Keyword matched against title, author, category, and owner")
	browseCmd.Flags().StringVar(&browseLocation, "location", "", "Location substring filter")
	browseCmd.Flags().StringVar(&browseCategory, "category", "", "Exact category filter")
	browseCmd.Flags().StringVar(&browseAvailable, "available", catalog.AvailabilityAny, "Availability filter: any, true, or false")
	browseCmd.Flags().IntVar(&browsePage, "page", 1, "Page number")
	browseCmd.Flags().IntVar(&browsePageSize, "page-size", 0, "Books per page (default from config)")
}

// browsePageOutput is the JSON shape for one catalog page
type browsePageOutput struct {
	Books     []api.Book `json:"books"`
	Page      int        `json:"page"`
	PageCount int        `json:"page_count"`
	Total     int        `json:"total"`
}

// runBrowse executes the catalog listing and returns an exit code
func runBrowse(ctx context.Context, w io.Writer) int {
	if err := validateAvailability(browseAvailable); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	pageSize := browsePageSize
	if pageSize <= 0 {
		pageSize = config.Load().PageSize
	}

	store := openSession()
	c := newClient(store)

	books, err := c.ListBooks(ctx)
	if err != nil {
		slog.Error("catalog fetch failed", "error", err)
		fmt.Fprintln(w, "Failed to load books.")
		return exitError
	}

	criteria := catalog.Criteria{
		Keyword:      browseSearch,
		Location:     browseLocation,
		Category:     browseCategory,
		Availability: browseAvailable,
	}
	filtered := catalog.Apply(books, criteria)

	_, pageCount := catalog.Paginate(filtered, pageSize, 1)
	page := catalog.ClampPage(browsePage, pageCount)
	pageItems, _ := catalog.Paginate(filtered, pageSize, page)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatBrowseJSON(pageItems, page, pageCount, len(filtered)))
	} else {
		fmt.Fprintln(w, formatBrowseHuman(pageItems, page, pageCount, len(filtered)))
	}
	return exitOK
}

// validateAvailability ensures the availability flag has a known value
func validateAvailability(value string) error {
	switch value {
	case catalog.AvailabilityAny, catalog.AvailabilityTrue, catalog.AvailabilityFalse:
		return nil
	}
	return fmt.Errorf("--available must be any, true, or false")
}

// formatBrowseHuman renders one catalog page as a table
func formatBrowseHuman(books []api.Book, page, pageCount, total int) string {
	if total == 0 {
		return "No books match."
	}

	var sb strings.Builder
	for _, b := range books {
		status := "available"
		if !b.Available {
			status = "on loan"
		}
		category := b.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(&sb, "%-24s  %-20s  %-12s  %-14s  %s\n",
			truncate(b.Title, 24), truncate(b.Author, 20), truncate(category, 12),
			truncate(b.Location, 14), status)
	}
	fmt.Fprintf(&sb, "\nPage %d of %d (%d book(s))", page, pageCount, total)
	return sb.String()
}

// formatBrowseJSON renders one catalog page as JSON
func formatBrowseJSON(books []api.Book, page, pageCount, total int) string {
	if books == nil {
		books = []api.Book{}
	}
	data, _ := json.MarshalIndent(browsePageOutput{
		Books:     books,
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}, "", "  ")
	return string(data)
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
