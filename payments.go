package checkoutpage

import (
	"context"
	"iter"

	"github.com/andyle182810/checkoutpage/httpclient"
)

const paymentsPath = "/v1/payments/"

type PaymentService struct {
	service
}

type PaymentListParams struct {
	Search string `json:"search"`
	Status string `json:"status"`
	PageID string `json:"pageId"`
	OffsetParams
}

func (s *PaymentService) List(ctx context.Context, params *PaymentListParams) (*List[Payment], error) {
	if params == nil {
		params = &PaymentListParams{} //nolint:exhaustruct
	}

	if err := s.check(params); err != nil {
		return nil, err
	}

	query := httpclient.NewQuery().
		Add("search", nonEmpty(params.Search)).
		Add("status", nonEmpty(params.Status)).
		Add("pageId", nonEmpty(params.PageID))
	params.addTo(query)

	list, err := httpclient.GetJSON[List[Payment]](ctx, s.requester, paymentsPath, query)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (s *PaymentService) ListAll(ctx context.Context, params *PaymentListParams) iter.Seq2[Payment, error] {
	base := PaymentListParams{} //nolint:exhaustruct
	if params != nil {
		base = *params
	}

	return offsetPages(ctx, base.OffsetParams, func(ctx context.Context, page OffsetParams) (*List[Payment], error) {
		next := base
		next.OffsetParams = page

		return s.List(ctx, &next)
	})
}
