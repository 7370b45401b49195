package query

import (
	"iter"

	"github.com/masmgr/gitmine/internal/commit"
)

// Groups maps keys to the commits sharing them. Keys keep first-seen
// order; commits within a group keep sequence order.
type Groups[K comparable] struct {
	keys   []K
	groups map[K][]commit.Commit
}

// GroupBy buckets the sequence by the given key function.
func GroupBy[K comparable](seq iter.Seq[commit.Commit], key func(commit.Commit) K) *Groups[K] {
	g := &Groups[K]{groups: make(map[K][]commit.Commit)}
	for c := range seq {
		k := key(c)
		if _, ok := g.groups[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.groups[k] = append(g.groups[k], c)
	}
	return g
}

// GroupByAuthor buckets the sequence by author identity.
func GroupByAuthor(seq iter.Seq[commit.Commit]) *Groups[string] {
	return GroupBy(seq, func(c commit.Commit) string { return c.Author })
}

// Keys returns the group keys in first-seen order.
func (g *Groups[K]) Keys() []K {
	return g.keys
}

// Get returns the commits grouped under k.
func (g *Groups[K]) Get(k K) []commit.Commit {
	return g.groups[k]
}

// Len returns the number of groups.
func (g *Groups[K]) Len() int {
	return len(g.keys)
}

// Count returns the commit count per key.
func Count[K comparable](g *Groups[K]) map[K]int {
	counts := make(map[K]int, g.Len())
	for k, commits := range g.groups {
		counts[k] = len(commits)
	}
	return counts
}

// CountBy returns commit counts per transformed key. Counts of keys the
// transform collapses together are summed.
func CountBy[K, T comparable](g *Groups[K], transform func(K) T) map[T]int {
	counts := make(map[T]int)
	for k, commits := range g.groups {
		counts[transform(k)] += len(commits)
	}
	return counts
}
