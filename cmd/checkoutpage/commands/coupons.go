package commands

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/andyle182810/checkoutpage"
	"github.com/andyle182810/checkoutpage/money"
	"github.com/andyle182810/checkoutpage/validator"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	errDiscountRequired = errors.New("exactly one of --amount-off or --percent-off is required")
	errMonthsRequired   = errors.New("--months is required when --duration is repeating")
	errUnknownDuration  = errors.New("--duration must be once, forever or repeating")
)

var flagValidator = validator.DefaultRestValidator()

type amountOffInput struct {
	AmountOff decimal.Decimal `json:"amount_off" validate:"gt=0"`
	Currency  string          `json:"currency"   validate:"required,currency"`
}

var couponHeader = []string{"ID", "Code", "Label", "Discount", "Duration", "Created"}

func couponDiscount(c checkoutpage.Coupon) string {
	switch {
	case c.AmountOff != nil:
		return formatAmount(*c.AmountOff, c.Currency)
	case c.PercentOff != nil:
		return strconv.FormatFloat(*c.PercentOff, 'f', -1, 64) + "%"
	default:
		return ""
	}
}

func couponDuration(c checkoutpage.Coupon) string {
	if c.DurationInMonths != nil {
		return fmt.Sprintf("%s (%d months)", c.Duration, *c.DurationInMonths)
	}

	return c.Duration
}

func couponRow(c checkoutpage.Coupon) []string {
	return []string{c.ID, c.Code, c.Label, couponDiscount(c), couponDuration(c), formatTime(c.CreatedAt)}
}

func newCouponsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "coupons",
		Aliases: []string{"coupon"},
		Short:   "Manage coupons",
	}

	cmd.AddCommand(newCouponsListCommand(a))
	cmd.AddCommand(newCouponsCreateCommand(a))

	return cmd
}

func newCouponsListCommand(a *app) *cobra.Command {
	var opts cursorOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List coupons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			params := &checkoutpage.CouponListParams{Search: opts.search, CursorParams: opts.params()}

			return listing(a, opts.all,
				func() (*checkoutpage.List[checkoutpage.Coupon], error) {
					return client.Coupons.List(cmd.Context(), params)
				},
				func() iter.Seq2[checkoutpage.Coupon, error] {
					return client.Coupons.ListAll(cmd.Context(), params)
				},
				couponHeader, couponRow, "No coupons found",
			)
		},
	}

	opts.bind(cmd)

	return cmd
}

// CouponCreateOptions mirrors the flags of "coupons create". AmountOff is a
// decimal in major units, e.g. "12.50".
type CouponCreateOptions struct {
	Label             string
	Code              string
	AmountOff         string
	Currency          string
	PercentOff        float64
	Duration          string
	Months            int
	MaxRedemptions    int
	RedeemBy          string
	PageIDs           []string
	AppliesToSetupFee bool
}

func (o *CouponCreateOptions) discount() (checkoutpage.Discount, error) {
	hasAmount, hasPercent := o.AmountOff != "", o.PercentOff != 0

	if hasAmount == hasPercent {
		return nil, errDiscountRequired
	}

	if hasPercent {
		return checkoutpage.PercentOff{Percent: o.PercentOff}, nil
	}

	amount, err := decimal.NewFromString(o.AmountOff)
	if err != nil {
		return nil, fmt.Errorf("invalid --amount-off %q: %w", o.AmountOff, err)
	}

	if err := flagValidator.Validate(amountOffInput{AmountOff: amount, Currency: o.Currency}); err != nil {
		return nil, fmt.Errorf("invalid --amount-off %q: %w", o.AmountOff, err)
	}

	minor, err := money.FromDecimal(amount, o.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid --amount-off %q: %w", o.AmountOff, err)
	}

	return checkoutpage.AmountOff{Amount: minor, Currency: strings.ToLower(o.Currency)}, nil
}

func (o *CouponCreateOptions) duration() (checkoutpage.Duration, error) {
	switch o.Duration {
	case checkoutpage.DurationNameOnce:
		return checkoutpage.DurationOnce{}, nil
	case checkoutpage.DurationNameForever:
		return checkoutpage.DurationForever{}, nil
	case checkoutpage.DurationNameRepeating:
		if o.Months == 0 {
			return nil, errMonthsRequired
		}

		return checkoutpage.DurationRepeating{Months: o.Months}, nil
	default:
		return nil, errUnknownDuration
	}
}

// Params converts the flags into request parameters. Unset optional flags
// stay nil so they are not sent.
func (o *CouponCreateOptions) Params() (*checkoutpage.CreateCouponParams, error) {
	discount, err := o.discount()
	if err != nil {
		return nil, err
	}

	duration, err := o.duration()
	if err != nil {
		return nil, err
	}

	params := &checkoutpage.CreateCouponParams{
		Label:             o.Label,
		Code:              o.Code,
		Discount:          discount,
		Duration:          duration,
		AppliesToSetupFee: nil,
		PageIDs:           o.PageIDs,
		MaxRedemptions:    nil,
		RedeemBy:          nil,
	}

	if o.AppliesToSetupFee {
		applies := true
		params.AppliesToSetupFee = &applies
	}

	if o.MaxRedemptions > 0 {
		maxRedemptions := o.MaxRedemptions
		params.MaxRedemptions = &maxRedemptions
	}

	if o.RedeemBy != "" {
		redeemBy, err := time.Parse(time.RFC3339, o.RedeemBy)
		if err != nil {
			return nil, fmt.Errorf("invalid --redeem-by %q: %w", o.RedeemBy, err)
		}

		params.RedeemBy = &redeemBy
	}

	return params, nil
}

func newCouponsCreateCommand(a *app) *cobra.Command {
	var opts CouponCreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a coupon",
		Long: `Create a coupon with either a fixed amount or a percentage off.

Amounts are given in major units and converted with the currency's number of
decimals, so --amount-off 12.50 --currency eur sends 1250.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := opts.Params()
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}

			coupon, err := client.Coupons.Create(cmd.Context(), params)
			if err != nil {
				return err
			}

			c := coupon.Data

			return a.render(coupon, propertyTable([][]string{
				{"ID", c.ID},
				{"Code", c.Code},
				{"Label", c.Label},
				{"Discount", couponDiscount(c)},
				{"Duration", couponDuration(c)},
				{"Created", formatTime(c.CreatedAt)},
			}))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Label, "label", "", "coupon label shown to buyers")
	flags.StringVar(&opts.Code, "code", "", "code entered at checkout")
	flags.StringVar(&opts.AmountOff, "amount-off", "", "fixed discount in major units")
	flags.StringVar(&opts.Currency, "currency", "", "ISO 4217 currency of --amount-off")
	flags.Float64Var(&opts.PercentOff, "percent-off", 0, "percentage discount")
	flags.StringVar(&opts.Duration, "duration", checkoutpage.DurationNameOnce, "once, forever or repeating")
	flags.IntVar(&opts.Months, "months", 0, "number of months for a repeating coupon")
	flags.IntVar(&opts.MaxRedemptions, "max-redemptions", 0, "maximum number of redemptions")
	flags.StringVar(&opts.RedeemBy, "redeem-by", "", "last redemption time (RFC 3339)")
	flags.StringSliceVar(&opts.PageIDs, "page-id", nil, "restrict the coupon to these checkout pages")
	flags.BoolVar(&opts.AppliesToSetupFee, "applies-to-setup-fee", false, "also discount the setup fee")

	_ = cmd.MarkFlagRequired("label")
	_ = cmd.MarkFlagRequired("code")
	cmd.MarkFlagsRequiredTogether("amount-off", "currency")
	cmd.MarkFlagsMutuallyExclusive("amount-off", "percent-off")

	return cmd
}
