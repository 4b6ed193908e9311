package checkoutpage

import (
	"context"
	"iter"

	"github.com/andyle182810/checkoutpage/httpclient"
)

// CursorParams pages by object id. StartingAfter walks forward from an id,
// EndingBefore walks backward; at most one of them may be set. Zero values
// are not sent.
type CursorParams struct {
	Limit         int    `json:"limit"          validate:"gte=0"`
	StartingAfter string `json:"starting_after" validate:"omitempty,excluded_with=EndingBefore"`
	EndingBefore  string `json:"ending_before"`
}

func (p CursorParams) addTo(query *httpclient.Query) {
	query.
		Add("limit", nonZero(p.Limit)).
		Add("starting_after", nonEmpty(p.StartingAfter)).
		Add("ending_before", nonEmpty(p.EndingBefore))
}

// OffsetParams pages by position. Zero values are not sent.
type OffsetParams struct {
	Limit int `json:"limit" validate:"gte=0"`
	Skip  int `json:"skip"  validate:"gte=0"`
}

func (p OffsetParams) addTo(query *httpclient.Query) {
	query.
		Add("limit", nonZero(p.Limit)).
		Add("skip", nonZero(p.Skip))
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func nonZero(value int) *int {
	if value == 0 {
		return nil
	}

	return &value
}

type cursorFetch[T any] func(ctx context.Context, page CursorParams) (*List[T], error)

// cursorPages yields every item reachable from params. When EndingBefore is
// set the walk goes backward, otherwise forward, until has_more is false.
func cursorPages[T any](
	ctx context.Context,
	params CursorParams,
	fetch cursorFetch[T],
	idOf func(T) string,
) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		page := params
		backward := page.EndingBefore != ""

		for {
			list, err := fetch(ctx, page)
			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			for _, item := range list.Data {
				if !yield(item, nil) {
					return
				}
			}

			if !list.HasMore || len(list.Data) == 0 {
				return
			}

			if backward {
				page.EndingBefore = idOf(list.Data[0])
			} else {
				page.StartingAfter = idOf(list.Data[len(list.Data)-1])
			}
		}
	}
}

type offsetFetch[T any] func(ctx context.Context, page OffsetParams) (*List[T], error)

func offsetPages[T any](ctx context.Context, params OffsetParams, fetch offsetFetch[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		page := params

		for {
			list, err := fetch(ctx, page)
			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			for _, item := range list.Data {
				if !yield(item, nil) {
					return
				}
			}

			if !list.HasMore || len(list.Data) == 0 {
				return
			}

			page.Skip += len(list.Data)
		}
	}
}
