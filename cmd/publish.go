// ABOUTME: Publish command for the booksarc CLI
// ABOUTME: Lists one of the user's books on the catalog

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

	"github.com/spf13/cobra"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/config"
	"github.com/NewOlosko23/booksarc-cli/internal/geo"
	"github.com/NewOlosko23/booksarc-cli/internal/imaging"
)

var (
	publishTitle       string
	publishAuthor      string
	publishCategory    string
	publishLocation    string
	publishDescription string
	publishCover       string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "List one of your books on the catalog",
	Long: `Publish a book you are willing to lend. The cover image is resized
locally before upload; when --location is omitted and device coordinates
are configured, a suggestion is looked up from the geocoding service.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPublish(ctx, os.Stdout, os.Stdin)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&publishTitle, "title", "", "Book title (required)")
	publishCmd.Flags().StringVar(&publishAuthor, "author", "", "Book author (required)")
	publishCmd.Flags().StringVar(&publishCategory, "category", "", "Category, e.g. Fiction")
	publishCmd.Flags().StringVar(&publishLocation, "location", "", "Pickup area (suggested from coordinates if omitted)")
	publishCmd.Flags().StringVar(&publishDescription, "description", "", "Short description")
	publishCmd.Flags().StringVar(&publishCover, "cover", "", "Path to a cover image (JPEG, PNG, or GIF)")
}

// runPublish validates the listing, prepares the cover, and creates the book
func runPublish(ctx context.Context, w io.Writer, r io.Reader) int {
	store := openSession()
	if store.Current() == nil {
		fmt.Fprintln(w, "You must be logged in to publish a book. Run \"booksarc login\" first.")
		return exitBlocked
	}

	title := strings.TrimSpace(publishTitle)
	author := strings.TrimSpace(publishAuthor)
	if title == "" || author == "" {
		fmt.Fprintln(w, "Error: --title and --author are required")
		return exitError
	}

	location := strings.TrimSpace(publishLocation)
	if location == "" {
		location = suggestLocation(ctx)
		if location != "" {
			fmt.Fprintf(w, "Using suggested location: %s\n", location)
		}
	}
	if location == "" {
		fmt.Fprintln(w, "Error: --location is required (no coordinates configured for a suggestion)")
		return exitError
	}

	var coverData string
	if publishCover != "" {
		f, err := os.Open(publishCover)
		if err != nil {
			fmt.Fprintf(w, "Error: cannot open cover image: %v\n", err)
			return exitError
		}
		coverData, err = imaging.FitCover(f, imaging.MaxCoverWidth, imaging.MaxCoverHeight)
		f.Close()
		if err != nil {
			fmt.Fprintf(w, "Error: cannot process cover image: %v\n", err)
			return exitError
		}
	}

	book := &api.NewBook{
		Title:       title,
		Author:      author,
		Category:    strings.TrimSpace(publishCategory),
		Description: strings.TrimSpace(publishDescription),
		Location:    location,
		CoverImage:  coverData,
	}

	created, err := newClient(store).CreateBook(ctx, book)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(w, "Publish rejected. Log in again and retry.")
			return exitFailed
		}
		slog.Error("publish failed", "title", title, "error", err)
		fmt.Fprintln(w, "Failed to publish book.")
		return exitError
	}

	fmt.Fprintf(w, "Published %q by %s (id: %s).\n", created.Title, created.Author, created.ID)
	return exitOK
}

// suggestLocation resolves the configured coordinates to an area name,
// returning "" when coordinates are absent or the lookup fails
func suggestLocation(ctx context.Context) string {
	cfg := config.Load()
	if !cfg.HasCoordinates {
		return ""
	}
	return geo.New(cfg.GeocodeURL).ResolveArea(ctx, cfg.Latitude, cfg.Longitude)
}
