// Package output renders dataset statistics for the console. Everything
// shown here is computed by the query package; this layer only formats.
package output

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/masmgr/gitmine/internal/commit"
	"github.com/masmgr/gitmine/internal/query"
)

// ReportOptions selects which statistics the report includes.
type ReportOptions struct {
	RepoPath        string
	GeneratedAt     time.Time // artifact timestamp, zero when unknown
	Extensions      []string
	Filenames       []string
	Mentions        []string
	AuthorSubstring string
	Year            int
	Top             int
}

// ConsoleWriter writes the commit dataset report.
type ConsoleWriter struct {
	Out io.Writer
}

// Write renders the full report for the store.
func (w *ConsoleWriter) Write(store *commit.Store, opts ReportOptions) error {
	header := color.New(color.FgGreen, color.Bold)
	header.Fprintln(w.Out, "Commit History Report")

	fmt.Fprintf(w.Out, "Repository: %s\n", opts.RepoPath)
	if opts.GeneratedAt.IsZero() {
		fmt.Fprintf(w.Out, "Commits: %d\n\n", store.Len())
	} else {
		fmt.Fprintf(w.Out, "Commits: %d (as of %s)\n\n", store.Len(), opts.GeneratedAt.Format("2006-01-02"))
	}

	if len(opts.Extensions) > 0 {
		w.writeExtensionStats(store, opts.Extensions)
	}
	if len(opts.Filenames) > 0 {
		w.writeFilenameStats(store, opts.Filenames)
	}
	w.writeAuthorLeaderboard(store)
	if len(opts.Mentions) > 0 {
		w.writeMentions(store, opts.Mentions)
	}
	if opts.Top > 0 {
		w.writeTopCommits(store, opts.Top)
		w.writeEarliestCommits(store, opts.Top)
	}
	if opts.AuthorSubstring != "" && opts.Year != 0 {
		w.writeWeeklyMean(store, opts.AuthorSubstring, opts.Year)
	}
	return nil
}

func (w *ConsoleWriter) section(title string) {
	color.New(color.FgCyan).Fprintln(w.Out, title)
}

// distinctFiles collects every non-empty path changed by any commit.
func distinctFiles(store *commit.Store) []string {
	seen := make(map[string]struct{})
	for c := range store.All() {
		for _, f := range c.Files {
			if f != "" {
				seen[f] = struct{}{}
			}
		}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// countMatching counts commits satisfying the predicate.
func countMatching(store *commit.Store, pred query.Predicate) int {
	n := 0
	for range query.Filter(store.All(), pred) {
		n++
	}
	return n
}

func percent(n, d int) string {
	if d == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(n)/float64(d)*100)
}

func (w *ConsoleWriter) writeExtensionStats(store *commit.Store, extensions []string) {
	w.section("File extensions")
	files := distinctFiles(store)

	tw := tabwriter.NewWriter(w.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Extension\tFiles\tOf all files\tOf commits")
	for _, ext := range extensions {
		totalWithExt := 0
		for _, f := range files {
			if strings.HasSuffix(f, "."+ext) {
				totalWithExt++
			}
		}
		touched := countMatching(store, query.TouchesExtension(ext))
		fmt.Fprintf(tw, ".%s\t%d\t%s\t%s\n", ext, totalWithExt, percent(totalWithExt, len(files)), percent(touched, store.Len()))
	}
	tw.Flush()

	unique := make(map[string]struct{})
	for _, f := range files {
		if ext := strings.TrimPrefix(path.Ext(f), "."); ext != "" {
			unique[ext] = struct{}{}
		}
	}
	all := make([]string, 0, len(unique))
	for ext := range unique {
		all = append(all, ext)
	}
	sort.Strings(all)
	fmt.Fprintf(w.Out, "All extensions: %s\n\n", strings.Join(all, ", "))
}

func (w *ConsoleWriter) writeFilenameStats(store *commit.Store, filenames []string) {
	w.section("Files of interest")
	tw := tabwriter.NewWriter(w.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "File\tCommits")
	for _, name := range filenames {
		fmt.Fprintf(tw, "%s\t%d\n", name, countMatching(store, query.TouchesSuffix(name)))
	}
	tw.Flush()
	fmt.Fprintln(w.Out)
}

func (w *ConsoleWriter) writeAuthorLeaderboard(store *commit.Store) {
	w.section("Commits by author")
	groups := query.GroupByAuthor(store.All())

	type authorCount struct {
		author string
		count  int
	}
	ranked := make([]authorCount, 0, groups.Len())
	for _, author := range groups.Keys() {
		ranked = append(ranked, authorCount{author: author, count: len(groups.Get(author))})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})

	tw := tabwriter.NewWriter(w.Out, 0, 0, 2, ' ', 0)
	for _, r := range ranked {
		fmt.Fprintf(tw, "%d\t%s\n", r.count, r.author)
	}
	tw.Flush()
	fmt.Fprintln(w.Out)
}

func (w *ConsoleWriter) writeMentions(store *commit.Store, mentions []string) {
	w.section("Message mentions")
	for _, text := range mentions {
		fmt.Fprintf(w.Out, "Commits mentioning %q: %d\n", text, query.Mentions(store.All(), text))
	}
	fmt.Fprintln(w.Out)
}

func (w *ConsoleWriter) writeTopCommits(store *commit.Store, n int) {
	w.section("Most recent commits")
	for i, c := range query.FirstN(store.All(), n) {
		fmt.Fprintf(w.Out, "#%d %s %s\n", i+1, c.ID, c.Subject())
	}
	fmt.Fprintln(w.Out)
}

func (w *ConsoleWriter) writeEarliestCommits(store *commit.Store, n int) {
	w.section("Earliest commits")
	earliest := query.EarliestN(store.All(), n)
	if len(earliest) == 0 {
		fmt.Fprintln(w.Out, "No commits.")
		fmt.Fprintln(w.Out)
		return
	}
	for _, c := range earliest {
		fmt.Fprintf(w.Out, "%s %s %s %s\n", c.Created.Format("2006-01-02"), c.ID, c.Author, c.Subject())
	}
	fmt.Fprintln(w.Out)
}

func (w *ConsoleWriter) writeWeeklyMean(store *commit.Store, substring string, year int) {
	w.section("Weekly activity")
	authors := query.Authors(store.All(), substring)
	mean, err := query.WeeklyMeanForAuthors(store.All(), authors, year)
	if err != nil {
		fmt.Fprintf(w.Out, "No commits by authors matching %q in %d.\n", substring, year)
		return
	}
	fmt.Fprintf(w.Out, "Mean commits per week by %s in %d: %.1f\n", strings.Join(authors, ", "), year, mean)
}
