// ABOUTME: Entry point for the booksarc CLI
// ABOUTME: Terminal client for the BooksArc book-lending service

package main

import (
	"fmt"
	"os"

	"github.com/NewOlosko23/booksarc-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
