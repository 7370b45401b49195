package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitmine/config"
	"github.com/masmgr/gitmine/internal/cache"
	"github.com/masmgr/gitmine/internal/commit"
	"github.com/masmgr/gitmine/internal/logger"
	"github.com/masmgr/gitmine/internal/pipeline"
	"github.com/masmgr/gitmine/internal/runner"
)

// CommandContext holds the shared setup every command needs: the loaded
// configuration, the logger, and the cache-aware store loader.
type CommandContext struct {
	Config *config.Config
	Log    *logger.Logger
}

// NewCommandContext creates a context from CLI flags.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log := logger.New(c.String("log-level"), c.String("log-format"))
	return &CommandContext{Config: cfg, Log: log}, nil
}

// LoadStore returns the commit store, consulting the cache first. force
// discards any existing artifact and re-runs full ingestion.
func (ctx *CommandContext) LoadStore(c *cli.Context, force bool) (*commit.Store, error) {
	ing := pipeline.NewIngestor(runner.New(), ctx.Config.Repo.Path, ctx.Config.Repo.Workers, ctx.Log)
	mgr := cache.NewManager(cache.Options{ArtifactPath: ctx.Config.ArtifactPath()}, ing, ctx.Log)
	return mgr.LoadOrBuild(c.Context, force)
}
