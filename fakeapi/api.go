// Package fakeapi serves an in-memory rendition of the Checkout Page API for
// tests and local development.
package fakeapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/andyle182810/checkoutpage"
	"github.com/andyle182810/checkoutpage/httpserver"
	"github.com/andyle182810/checkoutpage/middleware"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"
)

type Config struct {
	APIKeys []string
	// RateLimit is requests per second per key; zero disables limiting.
	RateLimit rate.Limit
	RateBurst int
	Seed      Seed
	Now       func() time.Time
}

type API struct {
	cfg    Config
	store  *Store
	faults *faultQueue
}

func New(cfg Config) *API {
	return &API{
		cfg:    cfg,
		store:  NewStore(cfg.Seed, cfg.Now),
		faults: newFaultQueue(),
	}
}

func (a *API) Store() *Store {
	return a.store
}

// Register mounts the API under group. Injected faults run before
// authentication.
func (a *API) Register(group *echo.Group) {
	group.Use(a.faults.middleware())
	group.Use(middleware.BearerAuth(a.cfg.APIKeys...))

	if a.cfg.RateLimit > 0 {
		group.Use(middleware.RateLimit(middleware.RateLimitConfig{ //nolint:exhaustruct
			Limit: a.cfg.RateLimit,
			Burst: a.cfg.RateBurst,
		}))
	}

	group.GET("/v1/customers/", httpserver.Wrapper(a.listCustomers), middleware.Handler("customers.list"))
	group.GET("/v1/customers/:id", httpserver.Wrapper(a.getCustomer), middleware.Handler("customers.get"))
	group.GET("/v1/coupons/", httpserver.Wrapper(a.listCoupons), middleware.Handler("coupons.list"))
	group.POST("/v1/coupons/", httpserver.Wrapper(a.createCoupon), middleware.Handler("coupons.create"))
	group.GET("/v1/payments/", httpserver.Wrapper(a.listPayments), middleware.Handler("payments.list"))
	group.GET("/v1/subscriptions/", httpserver.Wrapper(a.listSubscriptions), middleware.Handler("subscriptions.list"))
	group.GET("/v1/bookings/", httpserver.Wrapper(a.listBookings), middleware.Handler("bookings.list"))
	group.POST("/v1/tickets/validate/:code", httpserver.Wrapper(a.validateTicket), middleware.Handler("tickets.validate"))
}

type cursorListRequest struct {
	Search        string `json:"search"         query:"search"`
	Limit         int    `json:"limit"          query:"limit"          validate:"gte=0,lte=100"`
	StartingAfter string `json:"starting_after" query:"starting_after" validate:"omitempty,excluded_with=EndingBefore"`
	EndingBefore  string `json:"ending_before"  query:"ending_before"`
}

func (r *cursorListRequest) cursor() cursorQuery {
	return cursorQuery{limit: r.Limit, startingAfter: r.StartingAfter, endingBefore: r.EndingBefore}
}

type offsetListRequest struct {
	Search string `json:"search" query:"search"`
	Status string `json:"status" query:"status"`
	PageID string `json:"pageId" query:"pageId"`
	Limit  int    `json:"limit"  query:"limit"  validate:"gte=0,lte=100"`
	Skip   int    `json:"skip"   query:"skip"   validate:"gte=0"`
}

func (r *offsetListRequest) filter() offsetFilter {
	return offsetFilter{search: r.Search, status: r.Status, pageID: r.PageID}
}

type bookingListRequest struct {
	Search        string `json:"search"         query:"search"`
	Limit         int    `json:"limit"          query:"limit"          validate:"gte=0,lte=100"`
	StartingAfter string `json:"starting_after" query:"starting_after" validate:"omitempty,excluded_with=EndingBefore"`
	EndingBefore  string `json:"ending_before"  query:"ending_before"`
	Status        string `json:"status"         query:"status"`
	PageID        string `json:"pageId"         query:"pageId"`
}

func (r *bookingListRequest) cursor() cursorQuery {
	return cursorQuery{limit: r.Limit, startingAfter: r.StartingAfter, endingBefore: r.EndingBefore}
}

type getCustomerRequest struct {
	ID string `json:"id" param:"id"`
}

func cursorError(err error) error {
	if errors.Is(err, ErrUnknownCursor) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid pagination cursor").Wrap(err)
	}

	return err
}

func (a *API) listCustomers(_ *echo.Context, req *cursorListRequest) (int, any, error) {
	list, err := a.store.Customers(req.Search, req.cursor())
	if err != nil {
		return 0, nil, cursorError(err)
	}

	return http.StatusOK, list, nil
}

func (a *API) getCustomer(_ *echo.Context, req *getCustomerRequest) (int, any, error) {
	if !ValidObjectID(req.ID) {
		return 0, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid customer ID")
	}

	customer, err := a.store.Customer(req.ID)
	if err != nil {
		return 0, nil, echo.NewHTTPError(http.StatusNotFound, "Customer not found").Wrap(err)
	}

	return http.StatusOK, checkoutpage.Envelope[checkoutpage.Customer]{Data: customer}, nil
}

func (a *API) listCoupons(_ *echo.Context, req *cursorListRequest) (int, any, error) {
	list, err := a.store.Coupons(req.Search, req.cursor())
	if err != nil {
		return 0, nil, cursorError(err)
	}

	return http.StatusOK, list, nil
}

func (a *API) listPayments(_ *echo.Context, req *offsetListRequest) (int, any, error) {
	return http.StatusOK, a.store.Payments(req.filter(), req.Skip, req.Limit), nil
}

func (a *API) listSubscriptions(_ *echo.Context, req *offsetListRequest) (int, any, error) {
	return http.StatusOK, a.store.Subscriptions(req.filter(), req.Skip, req.Limit), nil
}

func (a *API) listBookings(_ *echo.Context, req *bookingListRequest) (int, any, error) {
	f := offsetFilter{search: req.Search, status: req.Status, pageID: req.PageID}

	list, err := a.store.Bookings(f, req.cursor())
	if err != nil {
		return 0, nil, cursorError(err)
	}

	return http.StatusOK, list, nil
}
