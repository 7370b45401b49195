package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitmine/internal/query"
)

// AuthorsCmd returns the authors command.
func AuthorsCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "match",
			Aliases: []string{"m"},
			Usage:   "Only list authors whose identity contains this substring",
		},
	)

	return &cli.Command{
		Name:    "authors",
		Aliases: []string{"a"},
		Usage:   "List authors and their commit counts",
		Flags:   flags,
		Action:  authorsAction,
	}
}

func authorsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	store, err := ctx.LoadStore(c, c.Bool("force"))
	if err != nil {
		return err
	}

	match := c.String("match")
	authors := query.Authors(store.All(), match)
	if len(authors) == 0 {
		fmt.Printf("No authors matching %q.\n", match)
		return nil
	}

	counts := query.Count(query.GroupByAuthor(store.All()))
	sort.SliceStable(authors, func(i, j int) bool {
		return counts[authors[i]] > counts[authors[j]]
	})

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, author := range authors {
		fmt.Fprintf(tw, "%d\t%s\n", counts[author], author)
	}
	return tw.Flush()
}
