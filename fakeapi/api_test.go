package fakeapi_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/andyle182810/checkoutpage"
	"github.com/andyle182810/checkoutpage/fakeapi"
	"github.com/andyle182810/checkoutpage/httpclient"
	"github.com/andyle182810/checkoutpage/httpserver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testAPIKey = "sk_test_fake"

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	api    *fakeapi.API
	url    string
	client *checkoutpage.Client
}

func start(t *testing.T, mutate func(*fakeapi.Config)) *harness {
	t.Helper()

	cfg := fakeapi.Config{
		APIKeys:   []string{testAPIKey},
		RateLimit: 0,
		RateBurst: 0,
		Seed:      fakeapi.DefaultSeed(),
		Now:       func() time.Time { return testNow },
	}

	if mutate != nil {
		mutate(&cfg)
	}

	api := fakeapi.New(cfg)

	srv := httpserver.New(&httpserver.Config{
		Host:         "127.0.0.1",
		Port:         0,
		BodyLimit:    "",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		GracePeriod:  time.Second,
	}, zerolog.Nop())
	api.Register(srv.Root)

	require.NoError(t, srv.Start(t.Context()))
	t.Cleanup(func() { require.NoError(t, srv.Stop()) })

	return &harness{api: api, url: srv.URL(), client: newClient(t, srv.URL(), testAPIKey)}
}

func newClient(t *testing.T, baseURL, apiKey string) *checkoutpage.Client {
	t.Helper()

	client, err := checkoutpage.New(apiKey, httpclient.WithBaseURL(baseURL), httpclient.WithTimeout(5*time.Second))
	require.NoError(t, err)

	return client
}

func requireKind(t *testing.T, err error, kind checkoutpage.Kind, message string) *checkoutpage.Error {
	t.Helper()

	apiErr, ok := httpclient.AsError(err)
	require.True(t, ok, "expected *checkoutpage.Error, got %v", err)
	require.Equal(t, kind, apiErr.Kind)

	if message != "" {
		require.Equal(t, message, apiErr.Message)
	}

	return apiErr
}

func TestCustomers_EndToEnd(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	page, err := h.client.Customers.List(t.Context(), nil)
	require.NoError(t, err)
	require.Len(t, page.Data, 10)
	require.True(t, page.HasMore)
	require.Nil(t, page.Total)

	got, err := h.client.Customers.Get(t.Context(), page.Data[3].ID)
	require.NoError(t, err)
	require.Equal(t, page.Data[3], got.Data)

	var ids []string

	for customer, err := range h.client.Customers.ListAll(t.Context(), &checkoutpage.CustomerListParams{
		Search:       "",
		CursorParams: checkoutpage.CursorParams{Limit: 7, StartingAfter: "", EndingBefore: ""},
	}) {
		require.NoError(t, err)

		ids = append(ids, customer.ID)
	}

	require.Len(t, ids, 25)
	require.Equal(t, page.Data[0].ID, ids[0])
}

func TestCustomers_EndingBeforeWalksBackward(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	all, err := h.client.Customers.List(t.Context(), &checkoutpage.CustomerListParams{
		Search:       "",
		CursorParams: checkoutpage.CursorParams{Limit: 100, StartingAfter: "", EndingBefore: ""},
	})
	require.NoError(t, err)

	page, err := h.client.Customers.List(t.Context(), &checkoutpage.CustomerListParams{
		Search:       "",
		CursorParams: checkoutpage.CursorParams{Limit: 3, StartingAfter: "", EndingBefore: all.Data[6].ID},
	})
	require.NoError(t, err)
	require.Equal(t, all.Data[3:6], page.Data)
	require.True(t, page.HasMore)
}

func TestCustomers_Errors(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	_, err := h.client.Customers.Get(t.Context(), "65f0ffffffffffffffffffff")
	require.ErrorIs(t, err, checkoutpage.ErrNotFound)
	requireKind(t, err, checkoutpage.KindNotFound, "Customer not found")

	_, err = h.client.Customers.Get(t.Context(), "not-an-id")
	require.ErrorIs(t, err, checkoutpage.ErrValidation)
	requireKind(t, err, checkoutpage.KindValidation, "Invalid customer ID")

	_, err = h.client.Customers.List(t.Context(), &checkoutpage.CustomerListParams{
		Search:       "",
		CursorParams: checkoutpage.CursorParams{Limit: 0, StartingAfter: "gone", EndingBefore: ""},
	})
	requireKind(t, err, checkoutpage.KindValidation, "Invalid pagination cursor")

	_, err = h.client.Customers.List(t.Context(), &checkoutpage.CustomerListParams{
		Search:       "",
		CursorParams: checkoutpage.CursorParams{Limit: 101, StartingAfter: "", EndingBefore: ""},
	})
	requireKind(t, err, checkoutpage.KindValidation, "limit must be less than or equal to 100")
}

func TestAuthentication(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	_, err := newClient(t, h.url, "sk_wrong").Customers.List(t.Context(), nil)
	require.ErrorIs(t, err, checkoutpage.ErrAuthentication)

	apiErr := requireKind(t, err, checkoutpage.KindAuthentication, "Invalid API key")
	assert.NotEmpty(t, apiErr.RequestID)
	assert.Zero(t, apiErr.StatusCode)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := start(t, func(cfg *fakeapi.Config) {
		cfg.RateLimit = rate.Limit(0.01)
		cfg.RateBurst = 2
	})

	for range 2 {
		_, err := h.client.Coupons.List(t.Context(), nil)
		require.NoError(t, err)
	}

	_, err := h.client.Coupons.List(t.Context(), nil)
	require.ErrorIs(t, err, checkoutpage.ErrRateLimit)
	requireKind(t, err, checkoutpage.KindRateLimit, "Rate limit exceeded")
}

func TestCoupons_Create(t *testing.T) {
	t.Parallel()

	h := start(t, nil)
	redeemBy := testNow.Add(30 * 24 * time.Hour)
	maxRedemptions := 50

	created, err := h.client.Coupons.Create(t.Context(), &checkoutpage.CreateCouponParams{
		Label:             "Summer sale",
		Code:              "SUMMER25",
		Discount:          checkoutpage.AmountOff{Amount: 2500, Currency: "eur"},
		Duration:          checkoutpage.DurationRepeating{Months: 3},
		AppliesToSetupFee: nil,
		PageIDs:           []string{"page_1"},
		MaxRedemptions:    &maxRedemptions,
		RedeemBy:          &redeemBy,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Data.ID)
	require.Equal(t, "SUMMER25", created.Data.Code)
	require.Equal(t, checkoutpage.DurationNameRepeating, created.Data.Duration)
	require.NotNil(t, created.Data.DurationInMonths)
	require.Equal(t, 3, *created.Data.DurationInMonths)
	require.NotNil(t, created.Data.AmountOff)
	require.Equal(t, int64(2500), *created.Data.AmountOff)
	require.Equal(t, "eur", created.Data.Currency)

	list, err := h.client.Coupons.List(t.Context(), &checkoutpage.CouponListParams{
		Search:       "summer",
		CursorParams: checkoutpage.CursorParams{Limit: 0, StartingAfter: "", EndingBefore: ""},
	})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	require.Equal(t, created.Data.ID, list.Data[0].ID)

	_, err = h.client.Coupons.Create(t.Context(), &checkoutpage.CreateCouponParams{
		Label:             "Duplicate",
		Code:              "summer25",
		Discount:          checkoutpage.PercentOff{Percent: 10},
		Duration:          checkoutpage.DurationOnce{},
		AppliesToSetupFee: nil,
		PageIDs:           nil,
		MaxRedemptions:    nil,
		RedeemBy:          nil,
	})
	require.ErrorIs(t, err, checkoutpage.ErrConflict)
	requireKind(t, err, checkoutpage.KindConflict, "Coupon code already exists")
}

func TestCoupons_CreateRejectsPastRedeemBy(t *testing.T) {
	t.Parallel()

	h := start(t, nil)
	redeemBy := testNow.Add(-time.Hour)

	_, err := h.client.Coupons.Create(t.Context(), &checkoutpage.CreateCouponParams{
		Label:             "Expired",
		Code:              "EXPIRED",
		Discount:          checkoutpage.PercentOff{Percent: 15},
		Duration:          checkoutpage.DurationForever{},
		AppliesToSetupFee: nil,
		PageIDs:           nil,
		MaxRedemptions:    nil,
		RedeemBy:          &redeemBy,
	})
	require.ErrorIs(t, err, checkoutpage.ErrValidation)
	requireKind(t, err, checkoutpage.KindValidation, "redeemBy must be in the future")
}

func TestPayments_OffsetPaging(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	page, err := h.client.Payments.List(t.Context(), &checkoutpage.PaymentListParams{
		Search:       "",
		Status:       "paid",
		PageID:       "",
		OffsetParams: checkoutpage.OffsetParams{Limit: 3, Skip: 0},
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	require.NotNil(t, page.Total)
	require.Equal(t, 8, *page.Total)
	require.True(t, page.HasMore)

	count := 0

	for payment, err := range h.client.Payments.ListAll(t.Context(), &checkoutpage.PaymentListParams{
		Search:       "",
		Status:       "paid",
		PageID:       "",
		OffsetParams: checkoutpage.OffsetParams{Limit: 3, Skip: 0},
	}) {
		require.NoError(t, err)
		require.Equal(t, "paid", payment.Status)

		count++
	}

	require.Equal(t, 8, count)
}

func TestSubscriptions_FilterByPage(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	page, err := h.client.Subscriptions.List(t.Context(), &checkoutpage.SubscriptionListParams{
		Search:       "",
		Status:       "",
		PageID:       "page_1",
		OffsetParams: checkoutpage.OffsetParams{Limit: 0, Skip: 0},
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 5)
	require.False(t, page.HasMore)

	for _, sub := range page.Data {
		assert.Equal(t, "page_1", sub.PageID)
	}
}

func TestBookings_FilterByStatus(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	var got []checkoutpage.Booking

	for booking, err := range h.client.Bookings.ListAll(t.Context(), &checkoutpage.BookingListParams{
		Search:       "",
		CursorParams: checkoutpage.CursorParams{Limit: 4, StartingAfter: "", EndingBefore: ""},
		Status:       "canceled",
		PageID:       "",
	}) {
		require.NoError(t, err)

		got = append(got, booking)
	}

	require.Len(t, got, 6)

	for _, booking := range got {
		assert.Equal(t, "canceled", booking.Status)
	}
}

func TestTickets_Validate(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	result, err := h.client.Tickets.Validate(t.Context(), fakeapi.TicketCode(0), &checkoutpage.ValidateTicketParams{
		Metadata: []checkoutpage.MetadataEntry{
			{Key: "gate", Value: checkoutpage.MetadataValue("north")},
			{Key: "seat", Value: checkoutpage.MetadataValue("A12")},
		},
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Ticket.CheckIns, 1)
	require.Equal(t, checkoutpage.CheckInStatusCheckedIn, result.Ticket.CheckInStatus)
	require.Len(t, result.Ticket.Metadata, 2)

	result, err = h.client.Tickets.Validate(t.Context(), fakeapi.TicketCode(0), &checkoutpage.ValidateTicketParams{
		Metadata: []checkoutpage.MetadataEntry{{Key: "gate", Value: nil}},
	})
	require.NoError(t, err)
	require.Len(t, result.Ticket.CheckIns, 2)
	require.Len(t, result.Ticket.Metadata, 1)
	require.Equal(t, "seat", result.Ticket.Metadata[0].Key)

	canceled, err := h.client.Tickets.Validate(t.Context(), fakeapi.TicketCode(4), nil)
	require.NoError(t, err)
	require.False(t, canceled.Success)
	require.Equal(t, checkoutpage.TicketStatusCanceled, canceled.Ticket.Status)

	_, err = h.client.Tickets.Validate(t.Context(), "no-such-ticket", nil)
	require.ErrorIs(t, err, checkoutpage.ErrNotFound)
	requireKind(t, err, checkoutpage.KindNotFound, "Ticket not found")
}

func TestInjectedFaults(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	h.api.FailNext("/v1/payments/", fakeapi.Fault{
		Status:      http.StatusBadGateway,
		ContentType: "",
		Body:        "upstream unavailable",
	})
	h.api.FailNext("/v1/payments/", fakeapi.Fault{
		Status:      http.StatusInternalServerError,
		ContentType: "application/json",
		Body:        `{"message":`,
	})

	_, err := h.client.Payments.List(t.Context(), nil)
	require.ErrorIs(t, err, checkoutpage.ErrAPI)

	apiErr := requireKind(t, err, checkoutpage.KindAPI, httpclient.DefaultErrorMessage)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "upstream unavailable", apiErr.Body)
	require.Equal(t, "upstream unavailable", apiErr.Payload)

	_, err = h.client.Payments.List(t.Context(), nil)
	apiErr = requireKind(t, err, checkoutpage.KindAPI, httpclient.DefaultErrorMessage)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Nil(t, apiErr.Payload)

	page, err := h.client.Payments.List(t.Context(), nil)
	require.NoError(t, err)
	require.Len(t, page.Data, 10)
}

func TestRouteLevelErrorsKeepTheirStatus(t *testing.T) {
	t.Parallel()

	h := start(t, nil)

	client, err := httpclient.New(testAPIKey, httpclient.WithBaseURL(h.url))
	require.NoError(t, err)

	_, err = client.Do(t.Context(), &httpclient.Request{Method: http.MethodGet, Path: "/v1/nope/"})
	require.ErrorIs(t, err, checkoutpage.ErrNotFound)
	requireKind(t, err, checkoutpage.KindNotFound, "Not Found")

	_, err = client.Do(t.Context(), &httpclient.Request{Method: http.MethodDelete, Path: "/v1/coupons/"})
	apiErr := requireKind(t, err, checkoutpage.KindAPI, "Method Not Allowed")
	require.Equal(t, http.StatusMethodNotAllowed, apiErr.StatusCode)

	_, err = client.Do(t.Context(), &httpclient.Request{
		Method: http.MethodPost,
		Path:   "/v1/coupons/",
		Body:   map[string]string{"label": strings.Repeat("a", 2<<20), "code": "BIG"},
	})
	apiErr = requireKind(t, err, checkoutpage.KindAPI, "Request Entity Too Large")
	require.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
}
