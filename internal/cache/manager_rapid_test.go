package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/masmgr/gitmine/internal/commit"
	"github.com/masmgr/gitmine/internal/logger"
)

func genCommits() *rapid.Generator[[]commit.Commit] {
	return rapid.Custom(func(t *rapid.T) []commit.Commit {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		seen := map[string]bool{}
		commits := make([]commit.Commit, 0, n)
		for i := 0; i < n; i++ {
			id := rapid.StringMatching(`[0-9a-f]{7,12}`).Draw(t, "id")
			if seen[id] {
				continue
			}
			seen[id] = true
			commits = append(commits, commit.Commit{
				ID:      id,
				Created: time.Unix(rapid.Int64Range(0, 2_000_000_000).Draw(t, "unix"), 0).In(time.FixedZone("", rapid.IntRange(-12, 12).Draw(t, "tz")*3600)),
				Author:  rapid.StringMatching(`[a-z]{1,8}@[a-z]{1,8}\.com`).Draw(t, "author"),
				Message: rapid.String().Draw(t, "message"),
				Files:   rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}(/[a-z]{1,8})?\.[a-z]{1,3}`), 0, 5).Draw(t, "files"),
			})
		}
		return commits
	})
}

// Whatever the store contents, a save/load cycle must reproduce every
// field of every commit.
func TestRapidArtifact_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		commits := genCommits().Draw(t, "commits")

		store, err := commit.NewStore(commits)
		if err != nil {
			t.Fatalf("NewStore: %v", err)
		}

		dir, err := os.MkdirTemp("", "gitmine-cache-*")
		if err != nil {
			t.Fatalf("MkdirTemp: %v", err)
		}
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "commit_data.bin")
		mgr := NewManager(Options{ArtifactPath: path}, nil, logger.Nop())
		if err := mgr.save(path, store); err != nil {
			t.Fatalf("save: %v", err)
		}
		loaded, err := mgr.load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}

		if loaded.Len() != store.Len() {
			t.Fatalf("Len() = %d, expected %d", loaded.Len(), store.Len())
		}
		for i := 0; i < store.Len(); i++ {
			w, g := store.At(i), loaded.At(i)
			if g.ID != w.ID || g.Author != w.Author || g.Message != w.Message {
				t.Fatalf("commit %d = %#v, expected %#v", i, g, w)
			}
			if !g.Created.Equal(w.Created) {
				t.Fatalf("commit %d Created = %v, expected %v", i, g.Created, w.Created)
			}
			if len(g.Files) != len(w.Files) {
				t.Fatalf("commit %d Files = %v, expected %v", i, g.Files, w.Files)
			}
			for j := range w.Files {
				if g.Files[j] != w.Files[j] {
					t.Fatalf("commit %d file %d = %q, expected %q", i, j, g.Files[j], w.Files[j])
				}
			}
		}
	})
}
