//nolint:ireturn
package httpclient

import (
	"context"
	"net/http"
)

// Requester is satisfied by *Client; resource services depend on it so tests
// can substitute a recording double.
type Requester interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

var _ Requester = (*Client)(nil)

func DoJSON[T any](ctx context.Context, r Requester, req *Request) (T, error) {
	var result T

	resp, err := r.Do(ctx, req)
	if err != nil {
		return result, err
	}

	err = resp.Decode(&result)

	return result, err
}

func GetJSON[T any](ctx context.Context, r Requester, path string, query *Query) (T, error) {
	return DoJSON[T](ctx, r, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
		Body:   nil,
	})
}

func PostJSON[T any](ctx context.Context, r Requester, path string, body any) (T, error) {
	return DoJSON[T](ctx, r, &Request{
		Method: http.MethodPost,
		Path:   path,
		Query:  nil,
		Body:   body,
	})
}
