package checkoutpage

import (
	"context"
	"iter"
	"time"

	"github.com/andyle182810/checkoutpage/httpclient"
)

const couponsPath = "/v1/coupons/"

const (
	DurationNameOnce      = "once"
	DurationNameForever   = "forever"
	DurationNameRepeating = "repeating"
)

type CouponService struct {
	service
}

type CouponListParams struct {
	Search string `json:"search"`
	CursorParams
}

// Discount is either AmountOff or PercentOff.
type Discount interface {
	applyDiscount(body *couponBody)
}

// AmountOff is a fixed discount in the currency's minor unit.
type AmountOff struct {
	Amount   int64  `json:"amountOff" validate:"gt=0"`
	Currency string `json:"currency"  validate:"required,currency"`
}

func (d AmountOff) applyDiscount(body *couponBody) {
	amount := d.Amount
	body.AmountOff = &amount
	body.Currency = d.Currency
}

type PercentOff struct {
	Percent float64 `json:"percentOff" validate:"gt=0,lte=100"`
}

func (d PercentOff) applyDiscount(body *couponBody) {
	percent := d.Percent
	body.PercentOff = &percent
}

// Duration is one of DurationOnce, DurationForever or DurationRepeating. Only
// DurationRepeating carries a month count.
type Duration interface {
	applyDuration(body *couponBody)
}

type DurationOnce struct{}

func (DurationOnce) applyDuration(body *couponBody) {
	body.Duration = DurationNameOnce
}

type DurationForever struct{}

func (DurationForever) applyDuration(body *couponBody) {
	body.Duration = DurationNameForever
}

type DurationRepeating struct {
	Months int `json:"durationInMonths" validate:"gte=1"`
}

func (d DurationRepeating) applyDuration(body *couponBody) {
	months := d.Months
	body.Duration = DurationNameRepeating
	body.DurationInMonths = &months
}

// CreateCouponParams describes a new coupon. Nil optional fields are not sent.
type CreateCouponParams struct {
	Label             string     `json:"label"          validate:"required"`
	Code              string     `json:"code"           validate:"required"`
	Discount          Discount   `json:"-"              validate:"-"`
	Duration          Duration   `json:"-"              validate:"-"`
	AppliesToSetupFee *bool      `json:"appliesToSetupFee"`
	PageIDs           []string   `json:"pageIds"`
	MaxRedemptions    *int       `json:"maxRedemptions" validate:"omitempty,gte=1"`
	RedeemBy          *time.Time `json:"redeemBy"`
}

// couponBody fixes the field order of the create request.
type couponBody struct {
	Label             string     `json:"label"`
	Code              string     `json:"code"`
	Duration          string     `json:"duration"`
	DurationInMonths  *int       `json:"durationInMonths,omitempty"`
	AppliesToSetupFee *bool      `json:"appliesToSetupFee,omitempty"`
	PageIDs           *[]string  `json:"pageIds,omitempty"`
	MaxRedemptions    *int       `json:"maxRedemptions,omitempty"`
	RedeemBy          *time.Time `json:"redeemBy,omitempty"`
	AmountOff         *int64     `json:"amountOff,omitempty"`
	Currency          string     `json:"currency,omitempty"`
	PercentOff        *float64   `json:"percentOff,omitempty"`
}

func (s *CouponService) List(ctx context.Context, params *CouponListParams) (*List[Coupon], error) {
	if params == nil {
		params = &CouponListParams{} //nolint:exhaustruct
	}

	if err := s.check(params); err != nil {
		return nil, err
	}

	query := httpclient.NewQuery().Add("search", nonEmpty(params.Search))
	params.addTo(query)

	list, err := httpclient.GetJSON[List[Coupon]](ctx, s.requester, couponsPath, query)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (s *CouponService) ListAll(ctx context.Context, params *CouponListParams) iter.Seq2[Coupon, error] {
	base := CouponListParams{} //nolint:exhaustruct
	if params != nil {
		base = *params
	}

	return cursorPages(ctx, base.CursorParams,
		func(ctx context.Context, page CursorParams) (*List[Coupon], error) {
			next := base
			next.CursorParams = page

			return s.List(ctx, &next)
		},
		func(c Coupon) string { return c.ID },
	)
}

func (s *CouponService) Create(ctx context.Context, params *CreateCouponParams) (*Envelope[Coupon], error) {
	body, err := s.buildCouponBody(params)
	if err != nil {
		return nil, err
	}

	coupon, err := httpclient.PostJSON[Envelope[Coupon]](ctx, s.requester, couponsPath, body)
	if err != nil {
		return nil, err
	}

	return &coupon, nil
}

func (s *CouponService) buildCouponBody(params *CreateCouponParams) (*couponBody, error) {
	if params == nil {
		return nil, invalidArgument("coupon parameters are required")
	}

	if params.Discount == nil {
		return nil, invalidArgument("discount is required")
	}

	if params.Duration == nil {
		return nil, invalidArgument("duration is required")
	}

	for _, part := range []any{params, params.Discount, params.Duration} {
		if err := s.check(part); err != nil {
			return nil, err
		}
	}

	body := &couponBody{ //nolint:exhaustruct
		Label:             params.Label,
		Code:              params.Code,
		AppliesToSetupFee: params.AppliesToSetupFee,
		MaxRedemptions:    params.MaxRedemptions,
		RedeemBy:          params.RedeemBy,
	}

	if params.PageIDs != nil {
		pageIDs := params.PageIDs
		body.PageIDs = &pageIDs
	}

	params.Duration.applyDuration(body)
	params.Discount.applyDiscount(body)

	return body, nil
}
