package checkoutpage

import (
	"context"
	"iter"
	"net/http"
	"net/url"

	"github.com/andyle182810/checkoutpage/httpclient"
)

const customersPath = "/v1/customers/"

type CustomerService struct {
	service
}

type CustomerListParams struct {
	Search string `json:"search"`
	CursorParams
}

// Get fetches one customer. An empty id fails without contacting the API.
func (s *CustomerService) Get(ctx context.Context, id string) (*Envelope[Customer], error) {
	if id == "" {
		return nil, invalidArgument("Customer ID is required")
	}

	customer, err := httpclient.DoJSON[Envelope[Customer]](ctx, s.requester, &httpclient.Request{
		Method: http.MethodGet,
		Path:   customersPath + url.PathEscape(id),
		Query:  nil,
		Body:   nil,
	})
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (s *CustomerService) List(ctx context.Context, params *CustomerListParams) (*List[Customer], error) {
	if params == nil {
		params = &CustomerListParams{} //nolint:exhaustruct
	}

	if err := s.check(params); err != nil {
		return nil, err
	}

	query := httpclient.NewQuery().Add("search", nonEmpty(params.Search))
	params.addTo(query)

	list, err := httpclient.GetJSON[List[Customer]](ctx, s.requester, customersPath, query)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// ListAll follows the cursor from params until the last page.
func (s *CustomerService) ListAll(ctx context.Context, params *CustomerListParams) iter.Seq2[Customer, error] {
	base := CustomerListParams{} //nolint:exhaustruct
	if params != nil {
		base = *params
	}

	return cursorPages(ctx, base.CursorParams,
		func(ctx context.Context, page CursorParams) (*List[Customer], error) {
			next := base
			next.CursorParams = page

			return s.List(ctx, &next)
		},
		func(c Customer) string { return c.ID },
	)
}
