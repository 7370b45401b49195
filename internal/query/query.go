// Package query provides pure, read-only operations over a completed
// commit store. All sequences preserve store order unless stated.
package query

import (
	"errors"
	"iter"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/masmgr/gitmine/internal/commit"
)

// ErrEmptyAggregation reports a summary asked of zero data points.
var ErrEmptyAggregation = errors.New("no data points to aggregate")

// Predicate decides whether a commit belongs to a result set.
type Predicate func(commit.Commit) bool

// Filter yields the commits satisfying all predicates, lazily and in
// input order. The result is restartable whenever seq is.
func Filter(seq iter.Seq[commit.Commit], preds ...Predicate) iter.Seq[commit.Commit] {
	return func(yield func(commit.Commit) bool) {
	next:
		for c := range seq {
			for _, p := range preds {
				if !p(c) {
					continue next
				}
			}
			if !yield(c) {
				return
			}
		}
	}
}

// ByAuthors matches commits whose author is one of the given identities.
func ByAuthors(authors []string) Predicate {
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	return func(c commit.Commit) bool {
		_, ok := set[c.Author]
		return ok
	}
}

// InYear matches commits created within [year-01-01, (year+1)-01-01),
// evaluated in each commit's own timezone offset.
func InYear(year int) Predicate {
	return func(c commit.Commit) bool {
		return c.Created.Year() == year
	}
}

// MessageContains matches commits whose message contains text,
// case-insensitively.
func MessageContains(text string) Predicate {
	text = strings.ToLower(text)
	return func(c commit.Commit) bool {
		return strings.Contains(strings.ToLower(c.Message), text)
	}
}

// TouchesExtension matches commits that changed at least one file with the
// given extension (without the dot). Commits with no files never match.
func TouchesExtension(ext string) Predicate {
	suffix := "." + ext
	return func(c commit.Commit) bool {
		for _, f := range c.Files {
			if strings.HasSuffix(path.Base(f), suffix) {
				return true
			}
		}
		return false
	}
}

// TouchesSuffix matches commits that changed a file whose path ends with
// the given suffix (e.g. a bare filename).
func TouchesSuffix(suffix string) Predicate {
	return func(c commit.Commit) bool {
		for _, f := range c.Files {
			if strings.HasSuffix(f, suffix) {
				return true
			}
		}
		return false
	}
}

// TouchesGlob matches commits that changed a file matching the doublestar
// pattern. Paths are normalized to forward slashes first.
func TouchesGlob(pattern string) Predicate {
	return func(c commit.Commit) bool {
		for _, f := range c.Files {
			matched, _ := doublestar.Match(pattern, strings.ReplaceAll(f, "\\", "/"))
			if matched {
				return true
			}
		}
		return false
	}
}

// Authors returns the distinct author identities containing substring,
// sorted for stable output.
func Authors(seq iter.Seq[commit.Commit], substring string) []string {
	seen := make(map[string]struct{})
	var authors []string
	for c := range seq {
		if _, ok := seen[c.Author]; ok {
			continue
		}
		seen[c.Author] = struct{}{}
		if strings.Contains(c.Author, substring) {
			authors = append(authors, c.Author)
		}
	}
	sort.Strings(authors)
	return authors
}

// Mentions counts commits whose message contains text, case-insensitively.
func Mentions(seq iter.Seq[commit.Commit], text string) int {
	n := 0
	for range Filter(seq, MessageContains(text)) {
		n++
	}
	return n
}

// WeeklyMeanForAuthors restricts to commits by the given authors within
// the year, buckets them by ISO week number and returns the arithmetic
// mean of the weekly counts. Zero matching commits is ErrEmptyAggregation.
func WeeklyMeanForAuthors(seq iter.Seq[commit.Commit], authors []string, year int) (float64, error) {
	filtered := Filter(seq, InYear(year), ByAuthors(authors))
	byWeek := GroupBy(filtered, func(c commit.Commit) int {
		_, week := c.Created.ISOWeek()
		return week
	})
	if byWeek.Len() == 0 {
		return 0, ErrEmptyAggregation
	}

	total := 0
	for _, n := range Count(byWeek) {
		total += n
	}
	return float64(total) / float64(byWeek.Len()), nil
}

// FirstN returns the first n commits in sequence order.
func FirstN(seq iter.Seq[commit.Commit], n int) []commit.Commit {
	var out []commit.Commit
	for c := range seq {
		if len(out) == n {
			break
		}
		out = append(out, c)
	}
	return out
}

// EarliestN returns the n oldest commits by creation time. Ties keep
// their original sequence order.
func EarliestN(seq iter.Seq[commit.Commit], n int) []commit.Commit {
	var all []commit.Commit
	for c := range seq {
		all = append(all, c)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Created.Before(all[j].Created)
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// Earliest returns the oldest commit, or ErrEmptyAggregation when the
// sequence is empty.
func Earliest(seq iter.Seq[commit.Commit]) (commit.Commit, error) {
	oldest := EarliestN(seq, 1)
	if len(oldest) == 0 {
		return commit.Commit{}, ErrEmptyAggregation
	}
	return oldest[0], nil
}
