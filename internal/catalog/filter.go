// ABOUTME: Pure filtering of a fetched book list by browse criteria
// ABOUTME: Active criteria are ANDed; empty values match everything

package catalog

import (
	"strings"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
)

// Availability criteria values
const (
	AvailabilityAny   = "any"
	AvailabilityTrue  = "true"
	AvailabilityFalse = "false"
)

// Criteria narrows a book list. The zero value matches every book.
type Criteria struct {
	Keyword      string
	Location     string
	Category     string
	Availability string // "any", "true", "false"; empty means any
}

// IsZero reports whether no criterion is active
func (c Criteria) IsZero() bool {
	return c.Keyword == "" && c.Location == "" && c.Category == "" &&
		(c.Availability == "" || c.Availability == AvailabilityAny)
}

// Apply returns the subset of books satisfying every active criterion,
// preserving the input order. It never mutates or reorders the input.
func Apply(books []api.Book, c Criteria) []api.Book {
	if c.IsZero() {
		return books
	}

	keyword := strings.ToLower(c.Keyword)
	location := strings.ToLower(c.Location)

	matched := make([]api.Book, 0, len(books))
	for _, book := range books {
		if !matchesKeyword(book, keyword) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(book.Location), location) {
			continue
		}
		if c.Category != "" && !strings.EqualFold(book.Category, c.Category) {
			continue
		}
		if !matchesAvailability(book, c.Availability) {
			continue
		}
		matched = append(matched, book)
	}
	return matched
}

// matchesKeyword checks the keyword against title, author, category, and
// owner display name; any hit matches.
func matchesKeyword(book api.Book, keyword string) bool {
	if keyword == "" {
		return true
	}
	for _, field := range []string{book.Title, book.Author, book.Category, book.OwnerName} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

func matchesAvailability(book api.Book, want string) bool {
	switch want {
	case AvailabilityTrue:
		return book.Available
	case AvailabilityFalse:
		return !book.Available
	default:
		return true
	}
}

// Categories returns the distinct categories present in books, in first-seen
// order, for building filter options.
func Categories(books []api.Book) []string {
	seen := make(map[string]bool)
	var out []string
	for _, book := range books {
		key := strings.ToLower(book.Category)
		if book.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, book.Category)
	}
	return out
}
