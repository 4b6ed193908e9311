package checkoutpage_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andyle182810/checkoutpage"
	"github.com/andyle182810/checkoutpage/httpclient"
	"github.com/andyle182810/checkoutpage/testutil"
	"github.com/stretchr/testify/require"
)

const customerJSON = `{
	"data": {
		"id": "65f1c0ffee0000000000000a",
		"email": "jane@example.com",
		"name": "Jane Doe",
		"address": {"line1": "1 Main St", "city": "Amsterdam", "country": "NL"},
		"createdAt": "2024-01-01T00:00:00.000Z",
		"updatedAt": "2024-01-02T00:00:00.000Z"
	}
}`

func TestCustomers_Get(t *testing.T) {
	t.Parallel()

	requester := testutil.NewFakeRequester(func(_ *httpclient.Request) (*httpclient.Response, error) {
		return testutil.JSONResponse(http.StatusOK, customerJSON), nil
	})
	client := checkoutpage.NewWithRequester(requester)

	customer, err := client.Customers.Get(t.Context(), "65f1c0ffee0000000000000a")

	require.NoError(t, err)
	require.Equal(t, "jane@example.com", customer.Data.Email)
	require.Equal(t, "Amsterdam", customer.Data.Address.City)
	require.Equal(t, 2024, customer.Data.CreatedAt.Year())

	call := requester.LastCall(t)
	require.Equal(t, http.MethodGet, call.Method)
	require.Equal(t, "/v1/customers/65f1c0ffee0000000000000a", call.Path)
	require.Nil(t, call.Body)
}

func TestCustomers_GetRejectsEmptyIDWithoutRequest(t *testing.T) {
	t.Parallel()

	requester := testutil.NewFakeRequester(testutil.RespondJSON(t, http.StatusOK, map[string]any{}))
	client := checkoutpage.NewWithRequester(requester)

	customer, err := client.Customers.Get(t.Context(), "")

	require.Nil(t, customer)
	require.ErrorIs(t, err, checkoutpage.ErrInvalidArgument)
	require.ErrorContains(t, err, "Customer ID is required")
	require.Zero(t, requester.CallCount())
}

func TestCustomers_GetEmptyIDNeverReachesTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	doer := &testutil.CountingDoer{Next: server.Client()}

	client, err := checkoutpage.New("sk_test_123",
		httpclient.WithBaseURL(server.URL),
		httpclient.WithDoer(doer),
	)
	require.NoError(t, err)

	_, err = client.Customers.Get(t.Context(), "")

	require.ErrorIs(t, err, checkoutpage.ErrInvalidArgument)
	require.Zero(t, doer.Count())
}

func TestCustomers_GetEscapesID(t *testing.T) {
	t.Parallel()

	requester := testutil.NewFakeRequester(func(_ *httpclient.Request) (*httpclient.Response, error) {
		return testutil.JSONResponse(http.StatusOK, customerJSON), nil
	})
	client := checkoutpage.NewWithRequester(requester)

	_, err := client.Customers.Get(t.Context(), "cus/../1")

	require.NoError(t, err)
	require.Equal(t, "/v1/customers/cus%2F..%2F1", requester.LastCall(t).Path)
}

func TestCustomers_GetPropagatesNotFound(t *testing.T) {
	t.Parallel()

	requester := testutil.NewFakeRequester(func(_ *httpclient.Request) (*httpclient.Response, error) {
		return testutil.JSONResponse(http.StatusNotFound, `{"message":"Customer not found"}`), nil
	})
	client := checkoutpage.NewWithRequester(requester)

	_, err := client.Customers.Get(t.Context(), "missing")

	require.ErrorIs(t, err, checkoutpage.ErrNotFound)
	require.Equal(t, checkoutpage.KindNotFound, httpclient.KindOf(err))
	require.EqualError(t, err, "Customer not found")
}

func TestCustomers_ListBuildsCursorQuery(t *testing.T) {
	t.Parallel()

	requester := testutil.NewFakeRequester(func(_ *httpclient.Request) (*httpclient.Response, error) {
		return testutil.JSONResponse(http.StatusOK, `{"data":[],"has_more":false}`), nil
	})
	client := checkoutpage.NewWithRequester(requester)

	_, err := client.Customers.List(t.Context(), &checkoutpage.CustomerListParams{
		Search: "jane",
		CursorParams: checkoutpage.CursorParams{
			Limit:         10,
			StartingAfter: "65f1c0ffee0000000000000a",
			EndingBefore:  "",
		},
	})
	require.NoError(t, err)

	call := requester.LastCall(t)
	require.Equal(t, "/v1/customers/", call.Path)
	require.Equal(t, []string{"search", "limit", "starting_after"}, call.Query.Keys())
	require.Equal(t, "search=jane&limit=10&starting_after=65f1c0ffee0000000000000a", call.Query.Encode())
}

func TestCustomers_ListWithoutParamsSendsNoQuery(t *testing.T) {
	t.Parallel()

	requester := testutil.NewFakeRequester(func(_ *httpclient.Request) (*httpclient.Response, error) {
		return testutil.JSONResponse(http.StatusOK, `{"data":[{"id":"a","email":"a@example.com"}],"has_more":true,"total":3}`), nil
	})
	client := checkoutpage.NewWithRequester(requester)

	list, err := client.Customers.List(t.Context(), nil)

	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	require.True(t, list.HasMore)
	require.NotNil(t, list.Total)
	require.Equal(t, 3, *list.Total)
	require.Equal(t, 0, requester.LastCall(t).Query.Len())
}

func TestCustomers_ListRejectsBothCursorDirections(t *testing.T) {
	t.Parallel()

	requester := testutil.NewFakeRequester(testutil.RespondJSON(t, http.StatusOK, map[string]any{}))
	client := checkoutpage.NewWithRequester(requester)

	_, err := client.Customers.List(t.Context(), &checkoutpage.CustomerListParams{
		Search: "",
		CursorParams: checkoutpage.CursorParams{
			Limit:         0,
			StartingAfter: "a",
			EndingBefore:  "b",
		},
	})

	require.ErrorIs(t, err, checkoutpage.ErrInvalidArgument)
	require.ErrorContains(t, err, "starting_after cannot be combined with ending_before")
	require.Zero(t, requester.CallCount())
}
