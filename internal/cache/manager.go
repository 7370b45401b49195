// Package cache persists the commit store as a binary artifact so the
// expensive subprocess ingestion runs at most once.
package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/masmgr/gitmine/internal/commit"
	"github.com/masmgr/gitmine/internal/logger"
)

// Builder produces a fully populated commit store. The ingestion pipeline
// is the production implementation.
type Builder interface {
	Build(ctx context.Context) (*commit.Store, error)
}

// CorruptArtifactError reports an artifact that exists but cannot be
// decoded. The manager never rebuilds on corruption; the caller decides.
type CorruptArtifactError struct {
	Path string
	Err  error
}

func (e *CorruptArtifactError) Error() string {
	return fmt.Sprintf("cache artifact %q is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptArtifactError) Unwrap() error {
	return e.Err
}

// Options configures the cache manager.
type Options struct {
	ArtifactPath string
}

// Manager decides between reusing the persisted artifact and running a
// full build. Single-invoker usage is assumed; concurrent writers racing
// on the artifact are out of scope.
type Manager struct {
	opts    Options
	builder Builder
	log     *logger.Logger
}

// NewManager creates a cache manager backed by the given builder.
func NewManager(opts Options, builder Builder, log *logger.Logger) *Manager {
	return &Manager{opts: opts, builder: builder, log: log}
}

// LoadOrBuild returns the commit store, deserializing the artifact when
// present and otherwise building and persisting it. force deletes any
// existing artifact first; a missing artifact is not an error there.
func (m *Manager) LoadOrBuild(ctx context.Context, force bool) (*commit.Store, error) {
	path := m.opts.ArtifactPath

	if force {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("invalidate cache artifact: %w", err)
		}
		m.log.Infof("cache invalidated: %s", path)
	}

	if _, err := os.Stat(path); err == nil {
		store, err := m.load(path)
		if err != nil {
			return nil, err
		}
		m.log.Debugf("cache hit: %d commits from %s", store.Len(), path)
		return store, nil
	}

	store, err := m.builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.save(path, store); err != nil {
		return nil, err
	}
	m.log.Infof("cached %d commits at %s", store.Len(), path)
	return store, nil
}

// load decodes the whole artifact. Any decode problem, including invalid
// store contents, surfaces as corruption.
func (m *Manager) load(path string) (*commit.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cache artifact: %w", err)
	}
	defer f.Close()

	var commits []commit.Commit
	if err := gob.NewDecoder(f).Decode(&commits); err != nil {
		return nil, &CorruptArtifactError{Path: path, Err: err}
	}

	store, err := commit.NewStore(commits)
	if err != nil {
		return nil, &CorruptArtifactError{Path: path, Err: err}
	}
	return store, nil
}

// save writes the artifact in one whole-file operation. The format is a
// versionless gob stream of the commit slice.
func (m *Manager) save(path string, store *commit.Store) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(store.Commits()); err != nil {
		return fmt.Errorf("encode cache artifact: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write cache artifact: %w", err)
	}
	return nil
}
