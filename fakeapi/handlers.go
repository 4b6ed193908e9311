package fakeapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/andyle182810/checkoutpage"
	"github.com/labstack/echo/v5"
)

type createCouponRequest struct {
	Label             string     `json:"label"             validate:"required"`
	Code              string     `json:"code"              validate:"required"`
	Duration          string     `json:"duration"          validate:"required,oneof=once forever repeating"`
	DurationInMonths  *int       `json:"durationInMonths"  validate:"omitempty,gte=1"`
	AppliesToSetupFee *bool      `json:"appliesToSetupFee"`
	PageIDs           []string   `json:"pageIds"`
	MaxRedemptions    *int       `json:"maxRedemptions"    validate:"omitempty,gte=1"`
	RedeemBy          *time.Time `json:"redeemBy"`
	AmountOff         *int64     `json:"amountOff"         validate:"omitempty,gt=0"`
	Currency          string     `json:"currency"          validate:"omitempty,currency"`
	PercentOff        *float64   `json:"percentOff"        validate:"omitempty,gt=0,lte=100"`
}

func unprocessable(message string) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, message)
}

// check enforces the rules that span several fields.
func (r *createCouponRequest) check(now time.Time) error {
	switch {
	case r.AmountOff == nil && r.PercentOff == nil:
		return unprocessable("Either amountOff or percentOff is required")
	case r.AmountOff != nil && r.PercentOff != nil:
		return unprocessable("amountOff cannot be combined with percentOff")
	case r.AmountOff != nil && r.Currency == "":
		return unprocessable("currency is required when amountOff is set")
	case r.Duration == checkoutpage.DurationNameRepeating && r.DurationInMonths == nil:
		return unprocessable("durationInMonths is required when duration is repeating")
	case r.Duration != checkoutpage.DurationNameRepeating && r.DurationInMonths != nil:
		return unprocessable("durationInMonths is only allowed when duration is repeating")
	case r.RedeemBy != nil && !r.RedeemBy.After(now):
		return unprocessable("redeemBy must be in the future")
	}

	return nil
}

func (r *createCouponRequest) coupon() checkoutpage.Coupon {
	coupon := checkoutpage.Coupon{ //nolint:exhaustruct
		Label:            r.Label,
		Code:             r.Code,
		AmountOff:        r.AmountOff,
		PercentOff:       r.PercentOff,
		Duration:         r.Duration,
		DurationInMonths: r.DurationInMonths,
		MaxRedemptions:   r.MaxRedemptions,
		RedeemBy:         r.RedeemBy,
		PageIDs:          r.PageIDs,
	}

	if r.AmountOff != nil {
		coupon.Currency = r.Currency
	}

	if r.AppliesToSetupFee != nil {
		coupon.AppliesToSetupFee = *r.AppliesToSetupFee
	}

	return coupon
}

func (a *API) createCoupon(_ *echo.Context, req *createCouponRequest) (int, any, error) {
	if err := req.check(a.store.now()); err != nil {
		return 0, nil, err
	}

	coupon, err := a.store.CreateCoupon(req.coupon())
	if errors.Is(err, ErrDuplicateCode) {
		return 0, nil, echo.NewHTTPError(http.StatusConflict, "Coupon code already exists").Wrap(err)
	}

	if err != nil {
		return 0, nil, err
	}

	return http.StatusCreated, checkoutpage.Envelope[checkoutpage.Coupon]{Data: coupon}, nil
}

type metadataInput struct {
	Key   string  `json:"key"   validate:"required"`
	Value *string `json:"value"`
}

type validateTicketRequest struct {
	Code     string          `json:"-"        param:"code"`
	Metadata []metadataInput `json:"metadata" validate:"omitempty,dive"`
}

func (a *API) validateTicket(_ *echo.Context, req *validateTicketRequest) (int, any, error) {
	changes := make([]metadataChange, 0, len(req.Metadata))
	for _, entry := range req.Metadata {
		changes = append(changes, metadataChange{key: entry.Key, value: entry.Value})
	}

	result, err := a.store.ValidateTicket(req.Code, changes)
	if err != nil {
		return 0, nil, echo.NewHTTPError(http.StatusNotFound, "Ticket not found").Wrap(err)
	}

	return http.StatusOK, checkoutpage.Envelope[checkoutpage.TicketValidation]{Data: result}, nil
}
