package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitmine/internal/query"
)

// MeanCmd returns the mean command.
func MeanCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:     "match",
			Aliases:  []string{"m"},
			Usage:    "Author substring selecting the author set",
			Required: true,
		},
		&cli.IntFlag{
			Name:    "year",
			Aliases: []string{"y"},
			Usage:   "Year to average over (default: current year)",
		},
	)

	return &cli.Command{
		Name:   "mean",
		Usage:  "Mean number of commits per ISO week for a set of authors",
		Flags:  flags,
		Action: meanAction,
	}
}

func meanAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	store, err := ctx.LoadStore(c, c.Bool("force"))
	if err != nil {
		return err
	}

	match := c.String("match")
	year := c.Int("year")
	if year == 0 {
		year = time.Now().Year()
	}

	authors := query.Authors(store.All(), match)
	mean, err := query.WeeklyMeanForAuthors(store.All(), authors, year)
	if errors.Is(err, query.ErrEmptyAggregation) {
		fmt.Printf("No commits by authors matching %q in %d.\n", match, year)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Mean number of commits by %v per week in %d: %.1f\n", authors, year, mean)
	return nil
}
