package checkoutpage

import (
	"context"
	"iter"

	"github.com/andyle182810/checkoutpage/httpclient"
)

const subscriptionsPath = "/v1/subscriptions/"

type SubscriptionService struct {
	service
}

type SubscriptionListParams struct {
	Search string `json:"search"`
	PageID string `json:"pageId"`
	Status string `json:"status"`
	OffsetParams
}

func (s *SubscriptionService) List(ctx context.Context, params *SubscriptionListParams) (*List[Subscription], error) {
	if params == nil {
		params = &SubscriptionListParams{} //nolint:exhaustruct
	}

	if err := s.check(params); err != nil {
		return nil, err
	}

	query := httpclient.NewQuery().
		Add("search", nonEmpty(params.Search)).
		Add("pageId", nonEmpty(params.PageID)).
		Add("status", nonEmpty(params.Status))
	params.addTo(query)

	list, err := httpclient.GetJSON[List[Subscription]](ctx, s.requester, subscriptionsPath, query)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (s *SubscriptionService) ListAll(
	ctx context.Context,
	params *SubscriptionListParams,
) iter.Seq2[Subscription, error] {
	base := SubscriptionListParams{} //nolint:exhaustruct
	if params != nil {
		base = *params
	}

	return offsetPages(ctx, base.OffsetParams,
		func(ctx context.Context, page OffsetParams) (*List[Subscription], error) {
			next := base
			next.OffsetParams = page

			return s.List(ctx, &next)
		},
	)
}
