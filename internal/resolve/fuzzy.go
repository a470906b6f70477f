// Package resolve turns a human-entered name into a TalentLMS resource ID.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Candidate is a resource that can be picked by name. Aliases hold other
// identifying strings such as a course code or a user's login and email.
type Candidate struct {
	ID      int
	Name    string
	Aliases []string
}

// Match is a ranked fuzzy match.
type Match struct {
	Candidate
	Score int
}

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrNoItems    = errors.New("nothing to search")
)

// NotFoundError means no candidate resembled the query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no match found for %q", e.Query)
}

// AmbiguousError means the best candidates scored the same.
type AmbiguousError struct {
	Query   string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "ambiguous match for %q, candidates:", e.Query)
	for _, m := range e.Matches {
		_, _ = fmt.Fprintf(&b, "\n  %d: %s", m.ID, m.Name)
	}
	return b.String()
}

// haystack adapts candidates to fuzzy.Source, searching the lowercased name
// followed by every alias.
type haystack []Candidate

func (h haystack) String(i int) string {
	parts := append([]string{h[i].Name}, h[i].Aliases...)
	return strings.ToLower(strings.Join(parts, " "))
}

func (h haystack) Len() int { return len(h) }

// Best returns the single candidate that matches query. An exact
// case-insensitive hit on the name or an alias wins outright; otherwise the
// top fuzzy result is used unless it ties with the runner-up.
func Best(query string, items []Candidate) (Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Candidate{}, ErrEmptyQuery
	}
	if len(items) == 0 {
		return Candidate{}, ErrNoItems
	}

	for _, item := range items {
		if strings.EqualFold(item.Name, query) {
			return item, nil
		}
		for _, alias := range item.Aliases {
			if alias != "" && strings.EqualFold(alias, query) {
				return item, nil
			}
		}
	}

	results := fuzzy.FindFrom(strings.ToLower(query), haystack(items))
	if len(results) == 0 {
		return Candidate{}, &NotFoundError{Query: query}
	}
	if len(results) > 1 && results[0].Score == results[1].Score {
		return Candidate{}, &AmbiguousError{Query: query, Matches: toMatches(items, results, 5)}
	}
	return items[results[0].Index], nil
}

// Rank returns up to limit candidates ordered best first.
func Rank(query string, items []Candidate, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 || limit <= 0 {
		return nil
	}
	return toMatches(items, fuzzy.FindFrom(strings.ToLower(query), haystack(items)), limit)
}

func toMatches(items []Candidate, results fuzzy.Matches, limit int) []Match {
	if len(results) > limit {
		results = results[:limit]
	}
	matches := make([]Match, 0, len(results))
	for _, r := range results {
		matches = append(matches, Match{Candidate: items[r.Index], Score: r.Score})
	}
	return matches
}
