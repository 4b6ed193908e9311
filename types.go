package checkoutpage

import "time"

// List is the envelope returned by every list endpoint.
type List[T any] struct {
	Data    []T  `json:"data"            yaml:"data"`
	HasMore bool `json:"has_more"        yaml:"has_more"`
	Total   *int `json:"total,omitempty" yaml:"total,omitempty"`
}

// Envelope wraps single-object responses.
type Envelope[T any] struct {
	Data T `json:"data" yaml:"data"`
}

type Address struct {
	Line1      string `json:"line1,omitempty"      yaml:"line1,omitempty"`
	City       string `json:"city,omitempty"       yaml:"city,omitempty"`
	State      string `json:"state,omitempty"      yaml:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"    yaml:"country,omitempty"`
}

type Shipping struct {
	Name    string   `json:"name,omitempty"    yaml:"name,omitempty"`
	Phone   string   `json:"phone,omitempty"   yaml:"phone,omitempty"`
	Address *Address `json:"address,omitempty" yaml:"address,omitempty"`
}

type Customer struct {
	ID               string    `json:"id"                         yaml:"id"`
	Email            string    `json:"email"                      yaml:"email"`
	Name             string    `json:"name,omitempty"             yaml:"name,omitempty"`
	CompanyName      string    `json:"companyName,omitempty"      yaml:"companyName,omitempty"`
	Phone            string    `json:"phone,omitempty"            yaml:"phone,omitempty"`
	BillingEmail     string    `json:"billingEmail,omitempty"     yaml:"billingEmail,omitempty"`
	Address          *Address  `json:"address,omitempty"          yaml:"address,omitempty"`
	Shipping         *Shipping `json:"shipping,omitempty"         yaml:"shipping,omitempty"`
	TaxID            string    `json:"taxId,omitempty"            yaml:"taxId,omitempty"`
	TaxIDType        string    `json:"taxIdType,omitempty"        yaml:"taxIdType,omitempty"`
	Seller           string    `json:"seller,omitempty"           yaml:"seller,omitempty"`
	SellerID         string    `json:"sellerId,omitempty"         yaml:"sellerId,omitempty"`
	StripeCustomerID string    `json:"stripeCustomerId,omitempty" yaml:"stripeCustomerId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"                  yaml:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"                  yaml:"updatedAt"`
}

type Coupon struct {
	ID                string     `json:"id"                          yaml:"id"`
	Label             string     `json:"label"                       yaml:"label"`
	Code              string     `json:"code"                        yaml:"code"`
	AmountOff         *int64     `json:"amountOff,omitempty"         yaml:"amountOff,omitempty"`
	Currency          string     `json:"currency,omitempty"          yaml:"currency,omitempty"`
	PercentOff        *float64   `json:"percentOff,omitempty"        yaml:"percentOff,omitempty"`
	AppliesToSetupFee bool       `json:"appliesToSetupFee"           yaml:"appliesToSetupFee"`
	Duration          string     `json:"duration"                    yaml:"duration"`
	DurationInMonths  *int       `json:"durationInMonths,omitempty"  yaml:"durationInMonths,omitempty"`
	MaxRedemptions    *int       `json:"maxRedemptions,omitempty"    yaml:"maxRedemptions,omitempty"`
	RedeemBy          *time.Time `json:"redeemBy,omitempty"          yaml:"redeemBy,omitempty"`
	PageIDs           []string   `json:"pageIds,omitempty"           yaml:"pageIds,omitempty"`
	TimesRedeemed     int        `json:"timesRedeemed"               yaml:"timesRedeemed"`
	Deleted           bool       `json:"deleted"                     yaml:"deleted"`
	SellerID          string     `json:"sellerId,omitempty"          yaml:"sellerId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"                   yaml:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"                   yaml:"updatedAt"`
}

type TaxBreakdown struct {
	Amount        int64   `json:"amount"                  yaml:"amount"`
	Rate          float64 `json:"rate,omitempty"          yaml:"rate,omitempty"`
	TaxRateID     string  `json:"taxRateId,omitempty"     yaml:"taxRateId,omitempty"`
	TaxableAmount int64   `json:"taxableAmount,omitempty" yaml:"taxableAmount,omitempty"`
	Inclusive     bool    `json:"inclusive,omitempty"     yaml:"inclusive,omitempty"`
}

type Payment struct {
	ID           string         `json:"id"                     yaml:"id"`
	Amount       int64          `json:"amount"                 yaml:"amount"`
	Status       string         `json:"status"                 yaml:"status"`
	Currency     string         `json:"currency"               yaml:"currency"`
	PageID       string         `json:"pageId,omitempty"       yaml:"pageId,omitempty"`
	TaxBreakdown []TaxBreakdown `json:"taxBreakdown,omitempty" yaml:"taxBreakdown,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"              yaml:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"              yaml:"updatedAt"`
}

type Subscription struct {
	ID        string    `json:"id"                 yaml:"id"`
	Amount    int64     `json:"amount"             yaml:"amount"`
	Status    string    `json:"status,omitempty"   yaml:"status,omitempty"`
	Currency  string    `json:"currency,omitempty" yaml:"currency,omitempty"`
	PageID    string    `json:"pageId,omitempty"   yaml:"pageId,omitempty"`
	CreatedAt time.Time `json:"createdAt"          yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"          yaml:"updatedAt"`
}

type Booking struct {
	ID            string         `json:"id"                      yaml:"id"`
	Amount        int64          `json:"amount"                  yaml:"amount"`
	Status        string         `json:"status"                  yaml:"status"`
	OrderID       string         `json:"orderId,omitempty"       yaml:"orderId,omitempty"`
	CustomerEmail string         `json:"customerEmail,omitempty" yaml:"customerEmail,omitempty"`
	CustomerID    string         `json:"customerId,omitempty"    yaml:"customerId,omitempty"`
	SellerID      string         `json:"sellerId,omitempty"      yaml:"sellerId,omitempty"`
	PageID        string         `json:"pageId,omitempty"        yaml:"pageId,omitempty"`
	Currency      string         `json:"currency"                yaml:"currency"`
	TaxBreakdown  []TaxBreakdown `json:"taxBreakdown,omitempty"  yaml:"taxBreakdown,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"               yaml:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"               yaml:"updatedAt"`
}

const (
	TicketStatusPaid     = "PAID"
	TicketStatusCanceled = "CANCELED"

	CheckInMethodQRScan = "QRSCAN"
	CheckInMethodManual = "MANUAL"

	CheckInStatusCheckedIn   = "CHECKEDIN"
	CheckInStatusUncheckedIn = "UNCHECKEDIN"
)

type CheckIn struct {
	Method            string    `json:"method"                      yaml:"method"`
	CheckedInAt       time.Time `json:"checkedInAt"                 yaml:"checkedInAt"`
	CheckedInByUserID string    `json:"checkedInByUserId,omitempty" yaml:"checkedInByUserId,omitempty"`
	Status            string    `json:"status"                      yaml:"status"`
}

type TicketMetadata struct {
	Key     string     `json:"key"               yaml:"key"`
	Value   string     `json:"value"             yaml:"value"`
	AddedAt *time.Time `json:"addedAt,omitempty" yaml:"addedAt,omitempty"`
}

type Ticket struct {
	ID             string           `json:"id"                       yaml:"id"`
	SellerID       string           `json:"sellerId"                 yaml:"sellerId"`
	ChargeID       string           `json:"chargeId,omitempty"       yaml:"chargeId,omitempty"`
	PageID         string           `json:"pageId"                   yaml:"pageId"`
	Status         string           `json:"status"                   yaml:"status"`
	OrderID        string           `json:"orderId,omitempty"        yaml:"orderId,omitempty"`
	CustomerName   string           `json:"customerName,omitempty"   yaml:"customerName,omitempty"`
	CustomerEmail  string           `json:"customerEmail,omitempty"  yaml:"customerEmail,omitempty"`
	TicketTypeID   string           `json:"ticketTypeId"             yaml:"ticketTypeId"`
	CheckIns       []CheckIn        `json:"checkIns"                 yaml:"checkIns"`
	LatestCheckIn  *CheckIn         `json:"latestCheckIn,omitempty"  yaml:"latestCheckIn,omitempty"`
	CheckInStatus  string           `json:"checkInStatus,omitempty"  yaml:"checkInStatus,omitempty"`
	TicketShortID  string           `json:"ticketShortId"            yaml:"ticketShortId"`
	OriginalPrice  int64            `json:"originalPrice"            yaml:"originalPrice"`
	DiscountAmount int64            `json:"discountAmount"           yaml:"discountAmount"`
	FeeAmount      int64            `json:"feeAmount"                yaml:"feeAmount"`
	TaxAmount      int64            `json:"taxAmount"                yaml:"taxAmount"`
	CouponAmount   int64            `json:"couponAmount"             yaml:"couponAmount"`
	Revenue        int64            `json:"revenue"                  yaml:"revenue"`
	Currency       string           `json:"currency,omitempty"       yaml:"currency,omitempty"`
	Livemode       bool             `json:"livemode"                 yaml:"livemode"`
	Metadata       []TicketMetadata `json:"metadata,omitempty"       yaml:"metadata,omitempty"`
	CanceledAt     *time.Time       `json:"canceledAt,omitempty"     yaml:"canceledAt,omitempty"`
	OrderedAt      time.Time        `json:"orderedAt"                yaml:"orderedAt"`
	CreatedAt      time.Time        `json:"createdAt"                yaml:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"                yaml:"updatedAt"`
}

type TicketValidation struct {
	Success bool   `json:"success" yaml:"success"`
	Ticket  Ticket `json:"ticket"  yaml:"ticket"`
}
