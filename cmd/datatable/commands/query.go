package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ncobase/datatable/config"
	"github.com/ncobase/datatable/datatable"
	"github.com/ncobase/datatable/navigation"
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/query"
	"github.com/ncobase/datatable/router"
	"github.com/ncobase/datatable/table"
	"github.com/spf13/cobra"
)

type queryFlags struct {
	search  string
	sort    string
	page    int
	filters []string
	from    string
	to      string
	asJSON  bool
}

func newQueryCommand(a *app) *cobra.Command {
	f := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query a paginated endpoint and print one page",
		Example: `  datatable query --search ada --sort name:desc --page 2
  datatable query --filter status=active --from 2024-01-05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), a.cfg, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "search term")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort as field[:asc|desc]")
	cmd.Flags().IntVarP(&f.page, "page", "p", 0, "page number")
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "extra filter key=value, repeatable")
	cmd.Flags().StringVar(&f.from, "from", "", "start date "+query.DateLayout)
	cmd.Flags().StringVar(&f.to, "to", "", "end date "+query.DateLayout)
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the page as JSON")
	return cmd
}

// update turns the flags into one filter update.
func (f *queryFlags) update() (map[string]any, error) {
	m := map[string]any{}
	if f.search != "" {
		m[query.KeySearch] = f.search
	}
	if f.sort != "" {
		field, dir, _ := strings.Cut(f.sort, ":")
		m[query.KeySortBy] = field
		if dir == "" {
			dir = string(query.SortAsc)
		}
		m[query.KeySortDirection] = dir
	}
	if f.from != "" || f.to != "" {
		r := map[string]any{}
		if f.from != "" {
			r["from"] = f.from
		}
		if f.to != "" {
			r["to"] = f.to
		}
		m[query.KeyDateRange] = r
	}
	if f.page > 0 {
		m[query.KeyPage] = f.page
	}
	for _, kv := range f.filters {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=value", kv)
		}
		m[k] = v
	}
	return m, nil
}

func runQuery(ctx context.Context, cfg *config.Config, f *queryFlags, out io.Writer) error {
	opts := []navigation.HTTPOption{
		navigation.WithTimeout(cfg.Navigator.Timeout),
		navigation.WithRetryMax(cfg.Navigator.RetryMax),
	}
	if cfg.Navigator.Breaker {
		opts = append(opts, navigation.WithBreaker(navigation.DefaultBreaker(cfg.Table.Route)))
	}
	nav, err := navigation.NewHTTP[Person](cfg.Navigator.BaseURL, opts...)
	if err != nil {
		return err
	}

	routes := router.NewRegistry()
	routes.Add(cfg.Table.Route, cfg.Server.Path)

	tbl, err := datatable.New(datatable.Config{
		Route:                cfg.Table.Route,
		Searchable:           cfg.Table.Searchable,
		EnableDateRange:      true,
		DefaultSortField:     cfg.Table.DefaultSortField,
		DefaultSortDirection: cfg.Table.DefaultSortDirection,
		DebounceWait:         cfg.Table.DebounceWait,
	}, peopleColumns(), nav, routes)
	if err != nil {
		return err
	}
	defer tbl.Close()
	nav.SetSink(tbl)

	m, err := f.update()
	if err != nil {
		return err
	}
	u, err := query.ParseUpdate(m)
	if err != nil {
		return err
	}
	if err := tbl.Apply(ctx, u); err != nil {
		return err
	}
	// filters send the table back to page 1; the requested page follows
	if f.page > 0 && tbl.State().Page != f.page {
		if err := tbl.GoToPage(ctx, f.page); err != nil {
			return err
		}
	}

	v := tbl.View()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(paging.Page[Person]{Data: v.Items, Meta: v.Meta})
	}
	return render(out, v)
}

func render(out io.Writer, v datatable.View[Person]) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	titles := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		title := h.Title
		switch h.Indicator {
		case table.IndicatorAsc:
			title += " ↑"
		case table.IndicatorDesc:
			title += " ↓"
		}
		titles[i] = title
	}
	fmt.Fprintln(w, strings.Join(titles, "\t"))
	for _, r := range v.Rows {
		fmt.Fprintln(w, strings.Join(r.Cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, v.Summary)
	if v.ShowPager {
		labels := make([]string, len(v.Pager.Entries))
		for i, e := range v.Pager.Entries {
			labels[i] = e.String()
			if e.Page == v.Pager.Current && !e.IsEllipsis() {
				labels[i] = "[" + labels[i] + "]"
			}
		}
		fmt.Fprintln(out, strings.Join(labels, " "))
	}
	return nil
}
