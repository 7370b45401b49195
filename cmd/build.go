package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// BuildCmd returns the build command, which ensures the cache artifact
// exists without printing a report.
func BuildCmd() *cli.Command {
	return &cli.Command{
		Name:   "build",
		Usage:  "Build (or rebuild with --force) the commit cache artifact",
		Flags:  commonFlags(),
		Action: buildAction,
	}
}

func buildAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	store, err := ctx.LoadStore(c, c.Bool("force"))
	if err != nil {
		return err
	}

	fmt.Printf("Number of commits: %d\n", store.Len())
	return nil
}
