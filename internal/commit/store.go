package commit

import (
	"fmt"
	"iter"
	"time"
)

// Commit is one historical change-set record mined from the repository.
// All fields are exported so the store can be serialized as a whole.
type Commit struct {
	ID      string
	Created time.Time
	Author  string
	Message string
	Files   []string
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}

// Store is an ordered, read-only collection of commits keyed by id.
// Order is the enumeration order (newest first); it is never re-sorted.
type Store struct {
	commits []Commit
	byID    map[string]int
}

// NewStore builds a store from commits in their given order.
// Every commit must have a non-empty id and ids must be unique.
func NewStore(commits []Commit) (*Store, error) {
	byID := make(map[string]int, len(commits))
	for i, c := range commits {
		if c.ID == "" {
			return nil, fmt.Errorf("commit at index %d has empty id", i)
		}
		if prev, ok := byID[c.ID]; ok {
			return nil, fmt.Errorf("duplicate commit id %q at indexes %d and %d", c.ID, prev, i)
		}
		byID[c.ID] = i
	}
	return &Store{commits: commits, byID: byID}, nil
}

// Len returns the number of commits in the store.
func (s *Store) Len() int {
	return len(s.commits)
}

// At returns the commit at position i in enumeration order.
func (s *Store) At(i int) Commit {
	return s.commits[i]
}

// Get looks up a commit by id.
func (s *Store) Get(id string) (Commit, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Commit{}, false
	}
	return s.commits[i], true
}

// All returns a restartable sequence over the commits in store order.
func (s *Store) All() iter.Seq[Commit] {
	return func(yield func(Commit) bool) {
		for _, c := range s.commits {
			if !yield(c) {
				return
			}
		}
	}
}

// Commits returns the backing slice. Callers must not mutate it.
func (s *Store) Commits() []Commit {
	return s.commits
}
