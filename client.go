// Package checkoutpage is a typed client for the Checkout Page API.
//
// Every resource family is exposed as a service on Client. All services share
// a single httpclient.Client, which owns authentication, query encoding,
// content negotiation and the mapping of error responses onto httpclient.Kind.
package checkoutpage

import (
	"github.com/andyle182810/checkoutpage/httpclient"
	"github.com/andyle182810/checkoutpage/validator"
)

type Client struct {
	Customers     *CustomerService
	Coupons       *CouponService
	Payments      *PaymentService
	Subscriptions *SubscriptionService
	Bookings      *BookingService
	Tickets       *TicketService
}

// New builds a client for apiKey. Options configure the underlying transport.
func New(apiKey string, opts ...httpclient.Option) (*Client, error) {
	transport, err := httpclient.New(apiKey, opts...)
	if err != nil {
		return nil, err
	}

	return NewWithRequester(transport), nil
}

// NewWithRequester wires the services to an arbitrary Requester.
func NewWithRequester(requester httpclient.Requester) *Client {
	svc := service{
		requester: requester,
		validate:  validator.DefaultRestValidator(),
	}

	return &Client{
		Customers:     &CustomerService{service: svc},
		Coupons:       &CouponService{service: svc},
		Payments:      &PaymentService{service: svc},
		Subscriptions: &SubscriptionService{service: svc},
		Bookings:      &BookingService{service: svc},
		Tickets:       &TicketService{service: svc},
	}
}

type service struct {
	requester httpclient.Requester
	validate  *validator.Validator
}

func (s service) check(params any) error {
	if err := s.validate.Validate(params); err != nil {
		return invalidArgument(err.Error())
	}

	return nil
}
