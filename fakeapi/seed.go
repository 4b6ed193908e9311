package fakeapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/andyle182810/checkoutpage"
	"github.com/google/uuid"
)

const sellerID = "seller_fake"

// Seed sizes the deterministic data set a Store starts with.
type Seed struct {
	Customers     int
	Coupons       int
	Payments      int
	Subscriptions int
	Bookings      int
	Tickets       int
}

func DefaultSeed() Seed {
	return Seed{
		Customers:     25,
		Coupons:       12,
		Payments:      30,
		Subscriptions: 15,
		Bookings:      20,
		Tickets:       10,
	}
}

var (
	seedEpoch = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	firstNames = []string{"Ada", "Grace", "Linus", "Margaret", "Ken", "Barbara", "Dennis"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Hamilton", "Thompson", "Liskov", "Ritchie"}
	cities     = []string{"Amsterdam", "Berlin", "Lisbon", "Oslo", "Vienna"}
	countries  = []string{"NL", "DE", "PT", "NO", "AT"}
	currencies = []string{"eur", "usd", "jpy"}
	pageIDs    = []string{"page_1", "page_2", "page_3"}

	paymentStatuses      = []string{"paid", "pending", "failed", "refunded"}
	subscriptionStatuses = []string{"active", "canceled", "past_due", "trialing"}
	bookingStatuses      = []string{"paid", "pending", "canceled"}
)

// TicketCode is the QR code of the n-th seeded ticket, starting at zero.
func TicketCode(n int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, fmt.Appendf(nil, "checkoutpage-fake-ticket-%d", n)).String()
}

func pick[T any](values []T, idx int) T {
	return values[idx%len(values)]
}

func seedAt(idx int) time.Time {
	return seedEpoch.Add(time.Duration(idx) * time.Hour)
}

func (s *Store) seed(seed Seed) {
	for idx := range seed.Customers {
		first, last := pick(firstNames, idx), pick(lastNames, idx+idx/len(firstNames))
		at := seedAt(idx)

		s.customers = prepend(s.customers, checkoutpage.Customer{ //nolint:exhaustruct
			ID:        s.nextID(),
			Email:     fmt.Sprintf("%s.%s%02d@example.com", strings.ToLower(first), strings.ToLower(last), idx),
			Name:      first + " " + last,
			Address:   &checkoutpage.Address{City: pick(cities, idx), Country: pick(countries, idx)}, //nolint:exhaustruct
			SellerID:  sellerID,
			CreatedAt: at,
			UpdatedAt: at,
		})
	}

	for idx := range seed.Coupons {
		s.coupons = prepend(s.coupons, seededCoupon(s.nextID(), idx))
	}

	for idx := range seed.Payments {
		at := seedAt(idx)
		amount := int64(1000 + 250*idx)

		s.payments = prepend(s.payments, checkoutpage.Payment{
			ID:       s.nextID(),
			Amount:   amount,
			Status:   pick(paymentStatuses, idx),
			Currency: pick(currencies, idx),
			PageID:   pick(pageIDs, idx),
			TaxBreakdown: []checkoutpage.TaxBreakdown{{ //nolint:exhaustruct
				Amount:        amount * 21 / 121,
				Rate:          21,
				TaxableAmount: amount - amount*21/121,
				Inclusive:     true,
			}},
			CreatedAt: at,
			UpdatedAt: at,
		})
	}

	for idx := range seed.Subscriptions {
		at := seedAt(idx)

		s.subscriptions = prepend(s.subscriptions, checkoutpage.Subscription{
			ID:        s.nextID(),
			Amount:    int64(990 * (1 + idx%3)),
			Status:    pick(subscriptionStatuses, idx),
			Currency:  pick(currencies, idx),
			PageID:    pick(pageIDs, idx),
			CreatedAt: at,
			UpdatedAt: at,
		})
	}

	for idx := range seed.Bookings {
		at := seedAt(idx)

		s.bookings = prepend(s.bookings, checkoutpage.Booking{ //nolint:exhaustruct
			ID:            s.nextID(),
			Amount:        int64(4500 + 500*idx),
			Status:        pick(bookingStatuses, idx),
			OrderID:       fmt.Sprintf("order_%03d", idx),
			CustomerEmail: fmt.Sprintf("guest%02d@example.com", idx),
			SellerID:      sellerID,
			PageID:        pick(pageIDs, idx),
			Currency:      pick(currencies, idx),
			CreatedAt:     at,
			UpdatedAt:     at,
		})
	}

	for idx := range seed.Tickets {
		code := TicketCode(idx)
		s.tickets[code] = seededTicket(s.nextID(), idx)
		s.ticketCodes = append(s.ticketCodes, code)
	}
}

func seededCoupon(id string, idx int) checkoutpage.Coupon {
	at := seedAt(idx)
	coupon := checkoutpage.Coupon{ //nolint:exhaustruct
		ID:        id,
		Label:     fmt.Sprintf("Seed coupon %d", idx),
		Code:      fmt.Sprintf("SEED%02d", idx),
		Duration:  checkoutpage.DurationNameOnce,
		SellerID:  sellerID,
		CreatedAt: at,
		UpdatedAt: at,
	}

	if idx%2 == 0 {
		amount := int64(500 * (1 + idx%4))
		coupon.AmountOff = &amount
		coupon.Currency = pick(currencies, idx)
	} else {
		percent := float64(5 * (1 + idx%4))
		coupon.PercentOff = &percent
	}

	if idx%3 == 2 {
		months := 3
		coupon.Duration = checkoutpage.DurationNameRepeating
		coupon.DurationInMonths = &months
	}

	return coupon
}

func seededTicket(id string, idx int) *checkoutpage.Ticket {
	at := seedAt(idx)
	price := int64(5000)
	fee, tax := price/10, price*8/100

	ticket := &checkoutpage.Ticket{ //nolint:exhaustruct
		ID:            id,
		SellerID:      sellerID,
		ChargeID:      fmt.Sprintf("charge_%03d", idx),
		PageID:        pick(pageIDs, idx),
		Status:        checkoutpage.TicketStatusPaid,
		OrderID:       fmt.Sprintf("order_%03d", idx),
		CustomerName:  pick(firstNames, idx) + " " + pick(lastNames, idx),
		CustomerEmail: fmt.Sprintf("attendee%02d@example.com", idx),
		TicketTypeID:  "ticket_type_general",
		CheckIns:      []checkoutpage.CheckIn{},
		CheckInStatus: checkoutpage.CheckInStatusUncheckedIn,
		TicketShortID: fmt.Sprintf("TICK%03d", idx),
		OriginalPrice: price,
		FeeAmount:     fee,
		TaxAmount:     tax,
		Revenue:       price + fee + tax,
		Currency:      "eur",
		OrderedAt:     at,
		CreatedAt:     at,
		UpdatedAt:     at,
	}

	if idx%5 == 4 {
		canceledAt := at.Add(24 * time.Hour)
		ticket.Status = checkoutpage.TicketStatusCanceled
		ticket.CanceledAt = &canceledAt
		ticket.UpdatedAt = canceledAt
	}

	return ticket
}
