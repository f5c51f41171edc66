// ABOUTME: Root command for the booksarc CLI
// ABOUTME: Handles global flags, configuration, and shared session wiring

package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/config"
	"github.com/NewOlosko23/booksarc-cli/internal/logger"
	"github.com/NewOlosko23/booksarc-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// Exit codes shared by all commands:
//
//	0 - success
//	1 - the requested thing failed (not found, rejected)
//	2 - error (connectivity, invalid input)
//	3 - blocked by session state (login required, or already logged in)
const (
	exitOK      = 0
	exitFailed  = 1
	exitError   = 2
	exitBlocked = 3
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "booksarc",
	Short: "Terminal client for the BooksArc book-lending service",
	Long: `booksarc is a terminal client for BooksArc, the peer-to-peer book-lending
service. Browse the catalog, manage your account, list your own books, and
send hire requests without leaving the shell. Run "booksarc ui" for the
full-screen interface.

Environment Variables:
  BOOKSARC_API_URL      Backend API URL (default: hosted BooksArc server)
  BOOKSARC_GEOCODE_URL  Reverse-geocoding service URL
  BOOKSARC_PAGE_SIZE    Books per catalog page (default: 8)
  BOOKSARC_LAT/LON      Device coordinates for location suggestions`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The TUI redirects logging to a file itself
		if cmd.Name() != "ui" {
			logger.Init()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BOOKSARC_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	return config.Load().APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds an API client, attaching the stored token when a
// session exists so authenticated endpoints work transparently
func newClient(store *session.Store) *api.Client {
	c := api.New(GetAPIURL())
	if id := store.Current(); id != nil {
		return c.WithToken(id.Token)
	}
	return c
}

// openSession loads the persisted session from the config directory
func openSession() *session.Store {
	store := session.New(session.DefaultConfigDir())
	store.Load()
	return store
}

// cachePath returns the location of the dashboard snapshot database
func cachePath() string {
	return filepath.Join(config.DataDir(), "dashboard.db")
}

// tuiLogPath returns where the TUI writes its debug log
func tuiLogPath() string {
	return filepath.Join(config.DataDir(), "booksarc.log")
}
