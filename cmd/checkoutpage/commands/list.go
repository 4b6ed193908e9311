package commands

import (
	"fmt"
	"iter"

	"github.com/andyle182810/checkoutpage"
	"github.com/spf13/cobra"
)

type cursorOptions struct {
	search        string
	limit         int
	startingAfter string
	endingBefore  string
	all           bool
}

func (o *cursorOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.search, "search", "", "free-text search")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "page size (API default when zero)")
	cmd.Flags().StringVar(&o.startingAfter, "starting-after", "", "return the page after this id")
	cmd.Flags().StringVar(&o.endingBefore, "ending-before", "", "return the page before this id")
	cmd.Flags().BoolVar(&o.all, "all", false, "follow the cursor through every page")
	cmd.MarkFlagsMutuallyExclusive("starting-after", "ending-before")
}

func (o *cursorOptions) params() checkoutpage.CursorParams {
	return checkoutpage.CursorParams{
		Limit:         o.limit,
		StartingAfter: o.startingAfter,
		EndingBefore:  o.endingBefore,
	}
}

type offsetOptions struct {
	search string
	status string
	pageID string
	limit  int
	skip   int
	all    bool
}

func (o *offsetOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.search, "search", "", "free-text search")
	cmd.Flags().StringVar(&o.status, "status", "", "only include this status")
	cmd.Flags().StringVar(&o.pageID, "page-id", "", "only include this checkout page")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "page size (API default when zero)")
	cmd.Flags().IntVar(&o.skip, "skip", 0, "number of records to skip")
	cmd.Flags().BoolVar(&o.all, "all", false, "page through every record")
}

func (o *offsetOptions) params() checkoutpage.OffsetParams {
	return checkoutpage.OffsetParams{Limit: o.limit, Skip: o.skip}
}

func collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T

	for item, err := range seq {
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// listing fetches either one page or, with all set, every page, and renders
// the result with row.
func listing[T any](
	a *app,
	all bool,
	page func() (*checkoutpage.List[T], error),
	every func() iter.Seq2[T, error],
	header []string,
	row func(T) []string,
	empty string,
) error {
	var (
		items  []T
		value  any
		footer string
		err    error
	)

	if all {
		items, err = collect(every())
		value = items
	} else {
		var list *checkoutpage.List[T]

		list, err = page()
		if list != nil {
			items = list.Data
			value = list

			if list.HasMore {
				footer = fmt.Sprintf("Showing %s. Use --all to fetch every page.", formatTotal(list.Total, len(list.Data)))
			}
		}
	}

	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, row(item))
	}

	return a.render(value, tabular{header: header, rows: rows, empty: empty, footer: footer})
}
