package checkoutpage

import (
	"context"
	"iter"

	"github.com/andyle182810/checkoutpage/httpclient"
)

const bookingsPath = "/v1/bookings/"

type BookingService struct {
	service
}

type BookingListParams struct {
	Search string `json:"search"`
	CursorParams
	Status string `json:"status"`
	PageID string `json:"pageId"`
}

// List sends the cursor parameters ahead of the status and page filters.
func (s *BookingService) List(ctx context.Context, params *BookingListParams) (*List[Booking], error) {
	if params == nil {
		params = &BookingListParams{} //nolint:exhaustruct
	}

	if err := s.check(params); err != nil {
		return nil, err
	}

	query := httpclient.NewQuery().Add("search", nonEmpty(params.Search))
	params.addTo(query)
	query.
		Add("status", nonEmpty(params.Status)).
		Add("pageId", nonEmpty(params.PageID))

	list, err := httpclient.GetJSON[List[Booking]](ctx, s.requester, bookingsPath, query)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (s *BookingService) ListAll(ctx context.Context, params *BookingListParams) iter.Seq2[Booking, error] {
	base := BookingListParams{} //nolint:exhaustruct
	if params != nil {
		base = *params
	}

	return cursorPages(ctx, base.CursorParams,
		func(ctx context.Context, page CursorParams) (*List[Booking], error) {
			next := base
			next.CursorParams = page

			return s.List(ctx, &next)
		},
		func(b Booking) string { return b.ID },
	)
}
