package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/andyle182810/checkoutpage/httpclient"
	"github.com/stretchr/testify/require"
)

type RespondFunc func(req *httpclient.Request) (*httpclient.Response, error)

// FakeRequester records every descriptor it receives and answers with
// respond. It satisfies httpclient.Requester.
type FakeRequester struct {
	mu      sync.Mutex
	calls   []*httpclient.Request
	respond RespondFunc
}

func NewFakeRequester(respond RespondFunc) *FakeRequester {
	return &FakeRequester{
		mu:      sync.Mutex{},
		calls:   nil,
		respond: respond,
	}
}

func (f *FakeRequester) Do(_ context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	resp, err := f.respond(req)
	if err != nil {
		return nil, err
	}

	if err := resp.Err(); err != nil {
		return nil, err
	}

	return resp, nil
}

func (f *FakeRequester) Calls() []*httpclient.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*httpclient.Request(nil), f.calls...)
}

func (f *FakeRequester) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

// LastCall fails the test when nothing has been recorded.
func (f *FakeRequester) LastCall(t *testing.T) *httpclient.Request {
	t.Helper()

	calls := f.Calls()
	require.NotEmpty(t, calls, "expected at least one request")

	return calls[len(calls)-1]
}

// JSONResponse builds a classified JSON response from a raw body.
func JSONResponse(status int, body string) *httpclient.Response {
	header := make(http.Header)
	header.Set(httpclient.HeaderContentType, httpclient.ContentTypeJSON)

	return httpclient.NewResponse(status, header, []byte(body))
}

// RespondJSON answers every request with the JSON encoding of value.
func RespondJSON(t *testing.T, status int, value any) RespondFunc {
	t.Helper()

	raw, err := json.Marshal(value)
	require.NoError(t, err)

	return func(_ *httpclient.Request) (*httpclient.Response, error) {
		return JSONResponse(status, string(raw)), nil
	}
}

// RequireBodyJSON marshals the descriptor body and compares it to expected.
func RequireBodyJSON(t *testing.T, req *httpclient.Request, expected string) {
	t.Helper()

	raw, err := json.Marshal(req.Body)
	require.NoError(t, err)
	require.JSONEq(t, expected, string(raw))
}

// CountingDoer wraps a Doer and counts round trips.
type CountingDoer struct {
	Next  httpclient.Doer
	count atomic.Int64
}

func (d *CountingDoer) Do(req *http.Request) (*http.Response, error) {
	d.count.Add(1)

	return d.Next.Do(req)
}

func (d *CountingDoer) Count() int64 {
	return d.count.Load()
}
