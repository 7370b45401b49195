package cmd

import (
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitmine/internal/output"
)

// ReportCmd returns the report command.
func ReportCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringSliceFlag{
			Name:  "ext",
			Usage: "File extension to tabulate (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "file",
			Usage: "Filename whose touch count to report (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "mention",
			Usage: "Message substring to count (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "match",
			Aliases: []string{"m"},
			Usage:   "Author substring for the weekly-mean statistic",
		},
		&cli.IntFlag{
			Name:    "year",
			Aliases: []string{"y"},
			Usage:   "Year for the weekly-mean statistic (default: current year)",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of commits in the recent/earliest sections",
		},
	)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"rep"},
		Usage:   "Print the full commit statistics report",
		Flags:   flags,
		Action:  reportAction,
	}
}

func reportAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	store, err := ctx.LoadStore(c, c.Bool("force"))
	if err != nil {
		return err
	}

	opts := reportOptions(c, ctx)
	if info, err := os.Stat(ctx.Config.ArtifactPath()); err == nil {
		opts.GeneratedAt = info.ModTime()
	}

	writer := &output.ConsoleWriter{Out: os.Stdout}
	return writer.Write(store, opts)
}

func reportOptions(c *cli.Context, ctx *CommandContext) output.ReportOptions {
	rep := ctx.Config.Report

	opts := output.ReportOptions{
		RepoPath:        ctx.Config.Repo.Path,
		Extensions:      rep.Extensions,
		Filenames:       rep.Filenames,
		Mentions:        rep.Mentions,
		AuthorSubstring: rep.AuthorSubstring,
		Year:            rep.Year,
		Top:             rep.Top,
	}

	if exts := c.StringSlice("ext"); len(exts) > 0 {
		opts.Extensions = exts
	}
	if files := c.StringSlice("file"); len(files) > 0 {
		opts.Filenames = files
	}
	if mentions := c.StringSlice("mention"); len(mentions) > 0 {
		opts.Mentions = mentions
	}
	if match := c.String("match"); match != "" {
		opts.AuthorSubstring = match
	}
	if year := c.Int("year"); year != 0 {
		opts.Year = year
	}
	if top := c.Int("top"); top != 0 {
		opts.Top = top
	}
	if opts.Year == 0 {
		opts.Year = time.Now().Year()
	}
	return opts
}
