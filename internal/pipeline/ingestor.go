// Package pipeline builds the commit dataset by fanning per-commit git
// queries out across a bounded worker pool.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/masmgr/gitmine/internal/commit"
	"github.com/masmgr/gitmine/internal/logger"
	"github.com/masmgr/gitmine/internal/runner"
)

// ErrEnumeration marks a failure of the initial commit-id listing. No
// fan-out work starts when enumeration fails.
var ErrEnumeration = errors.New("commit enumeration failed")

// gitDateLayout matches git's %ci output, e.g. "2023-12-01 10:30:00 +0100".
const gitDateLayout = "2006-01-02 15:04:05 -0700"

// CommandRunner is the slice of runner.Runner the pipeline needs. Tests
// substitute a stub so no processes are spawned.
type CommandRunner interface {
	Lines(ctx context.Context, cmd runner.Command, transforms ...runner.LineTransform) ([]string, error)
	First(ctx context.Context, cmd runner.Command, transforms ...runner.LineTransform) (string, error)
	Joined(ctx context.Context, cmd runner.Command, transforms ...runner.LineTransform) (string, error)
}

// Compile-time interface conformance check.
var _ CommandRunner = (*runner.Runner)(nil)

// Ingestor drives one build attempt over a repository's history.
type Ingestor struct {
	runner  CommandRunner
	repo    string
	workers int
	log     *logger.Logger
}

// NewIngestor creates an ingestor for the repository at repoPath. A
// non-positive workers value falls back to the available parallelism.
func NewIngestor(r CommandRunner, repoPath string, workers int, log *logger.Logger) *Ingestor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ingestor{runner: r, repo: repoPath, workers: workers, log: log}
}

// Build enumerates all non-merge commits and enriches each with its changed
// files, author, timestamp and message. Any single failure aborts the whole
// build; a returned store is always fully populated.
func (ing *Ingestor) Build(ctx context.Context) (*commit.Store, error) {
	ids, err := ing.runner.Lines(ctx, ing.gitCmd("log", `--pretty=format:"%h"`, "--no-merges"), runner.ChompQuotes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumeration, err)
	}

	commits := make([]commit.Commit, len(ids))
	for i, id := range ids {
		commits[i] = commit.Commit{ID: id}
	}
	ing.log.Infof("enumerated %d commits", len(commits))

	phases := []struct {
		name string
		run  func(context.Context, []commit.Commit) error
	}{
		{"files", ing.fetchFiles},
		{"author", ing.fetchAuthors},
		{"created", ing.fetchTimestamps},
		{"message", ing.fetchMessages},
	}
	for _, phase := range phases {
		start := time.Now()
		if err := phase.run(ctx, commits); err != nil {
			return nil, fmt.Errorf("%s phase: %w", phase.name, err)
		}
		ing.log.Debugf("%s phase done in %s", phase.name, time.Since(start).Round(time.Millisecond))
	}

	return commit.NewStore(commits)
}

// fetchFiles fills in the changed-file list of every commit. An empty list
// is valid (merge-free root commits have no diff against a parent).
func (ing *Ingestor) fetchFiles(ctx context.Context, commits []commit.Commit) error {
	results, err := mapOrdered(ctx, ing.workers, len(commits), func(ctx context.Context, i int) ([]string, error) {
		return ing.runner.Lines(ctx, ing.gitCmd("diff-tree", "--no-commit-id", "--name-only", "-r", commits[i].ID))
	})
	if err != nil {
		return err
	}
	for i := range commits {
		commits[i].Files = results[i]
	}
	return nil
}

func (ing *Ingestor) fetchAuthors(ctx context.Context, commits []commit.Commit) error {
	results, err := mapOrdered(ctx, ing.workers, len(commits), func(ctx context.Context, i int) (string, error) {
		return ing.runner.First(ctx, ing.gitCmd("show", "-s", `--format="%ae"`, commits[i].ID), runner.ChompQuotes)
	})
	if err != nil {
		return err
	}
	for i := range commits {
		commits[i].Author = results[i]
	}
	return nil
}

func (ing *Ingestor) fetchTimestamps(ctx context.Context, commits []commit.Commit) error {
	results, err := mapOrdered(ctx, ing.workers, len(commits), func(ctx context.Context, i int) (time.Time, error) {
		line, err := ing.runner.First(ctx, ing.gitCmd("show", "-s", `--format="%ci"`, commits[i].ID), runner.ChompQuotes)
		if err != nil {
			return time.Time{}, err
		}
		when, err := time.Parse(gitDateLayout, line)
		if err != nil {
			return time.Time{}, fmt.Errorf("commit %s: parse date %q: %w", commits[i].ID, line, err)
		}
		return when, nil
	})
	if err != nil {
		return err
	}
	for i := range commits {
		commits[i].Created = results[i]
	}
	return nil
}

func (ing *Ingestor) fetchMessages(ctx context.Context, commits []commit.Commit) error {
	results, err := mapOrdered(ctx, ing.workers, len(commits), func(ctx context.Context, i int) (string, error) {
		return ing.runner.Joined(ctx, ing.gitCmd("show", "-s", "--format=%B", commits[i].ID))
	})
	if err != nil {
		return err
	}
	for i := range commits {
		commits[i].Message = results[i]
	}
	return nil
}

func (ing *Ingestor) gitCmd(args ...string) runner.Command {
	return runner.Command{Name: "git", Args: args, Dir: ing.repo}
}
