package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/pagemill/internal/config"
	"git.home.luguber.info/inful/pagemill/internal/content"
)

// ListCmd prints the documents a build would include.
type ListCmd struct {
	Drafts bool `short:"D" help:"Include draft documents"`
}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	docs, _, err := content.NewDiscovery(cfg.Content.Dir).Discover()
	if err != nil {
		return err
	}
	content.SortByDateDesc(docs)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSLUG\tTITLE\tTAGS")
	listed := 0
	for _, doc := range docs {
		if doc.Draft && !l.Drafts {
			continue
		}
		title := doc.Title
		if doc.Draft {
			title += " (draft)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			doc.Date.Format("2006-01-02"), doc.Slug, title, strings.Join(doc.Tags, ","))
		listed++
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d documents\n", listed)
	return nil
}
