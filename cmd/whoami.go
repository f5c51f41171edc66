// ABOUTME: Whoami command for the booksarc CLI
// ABOUTME: Prints the current session state

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/NewOlosko23/booksarc-cli/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// whoamiOutput is the JSON shape of the session report; the token stays out
type whoamiOutput struct {
	LoggedIn     bool   `json:"logged_in"`
	ID           string `json:"id,omitempty"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	Subscription string `json:"subscription,omitempty"`
}

// runWhoami prints the session and returns an exit code
func runWhoami(w io.Writer) int {
	store := openSession()
	id := store.Current()

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(id))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(id))
	}

	if id == nil {
		return exitFailed
	}
	return exitOK
}

func formatWhoamiHuman(id *session.Identity) string {
	if id == nil {
		return "Not logged in."
	}
	out := fmt.Sprintf("%s <%s>", id.Username, id.Email)
	if id.Subscription != nil && id.Subscription.Status != "" {
		out += fmt.Sprintf("\nSubscription: %s (%s)", id.Subscription.Plan, id.Subscription.Status)
	}
	return out
}

func formatWhoamiJSON(id *session.Identity) string {
	out := whoamiOutput{}
	if id != nil {
		out.LoggedIn = true
		out.ID = id.ID
		out.Username = id.Username
		out.Email = id.Email
		if id.Subscription != nil {
			out.Subscription = id.Subscription.Status
		}
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data)
}
