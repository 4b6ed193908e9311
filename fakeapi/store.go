package fakeapi

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/andyle182810/checkoutpage"
	"github.com/andyle182810/checkoutpage/pagination"
)

var (
	ErrNotFound      = errors.New("fakeapi: not found")
	ErrDuplicateCode = errors.New("fakeapi: duplicate coupon code")
	ErrUnknownCursor = errors.New("fakeapi: unknown cursor")
)

const idPrefix = "65f0"

var objectIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// ValidObjectID reports whether id has the 24 lowercase hex digit shape the
// API uses for object ids.
func ValidObjectID(id string) bool {
	return objectIDPattern.MatchString(id)
}

// Store keeps every collection newest first. Ids grow monotonically, so that
// order is also descending id order.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	seq uint64

	customers     []checkoutpage.Customer
	coupons       []checkoutpage.Coupon
	payments      []checkoutpage.Payment
	subscriptions []checkoutpage.Subscription
	bookings      []checkoutpage.Booking
	tickets       map[string]*checkoutpage.Ticket
	ticketCodes   []string
}

func NewStore(seed Seed, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}

	store := &Store{ //nolint:exhaustruct
		now:     now,
		tickets: make(map[string]*checkoutpage.Ticket),
	}
	store.seed(seed)

	return store
}

func (s *Store) nextID() string {
	s.seq++

	return fmt.Sprintf("%s%020x", idPrefix, s.seq)
}

func prepend[T any](items []T, item T) []T {
	return append([]T{item}, items...)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func filter[T any](items []T, keep func(T) bool) []T {
	kept := make([]T, 0, len(items))

	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}

	return kept
}

type cursorQuery struct {
	limit         int
	startingAfter string
	endingBefore  string
}

func cursorPage[T any](items []T, idOf func(T) string, query cursorQuery) (checkoutpage.List[T], error) {
	ids := make([]string, len(items))
	for idx, item := range items {
		ids[idx] = idOf(item)
	}

	window, ok := pagination.CursorWindow(ids, query.startingAfter, query.endingBefore, query.limit)
	if !ok {
		return checkoutpage.List[T]{}, ErrUnknownCursor //nolint:exhaustruct
	}

	return checkoutpage.List[T]{
		Data:    append([]T{}, items[window.Start:window.End]...),
		HasMore: window.HasMore,
		Total:   nil,
	}, nil
}

func offsetPage[T any](items []T, skip, limit int) checkoutpage.List[T] {
	window := pagination.OffsetWindow(len(items), skip, limit)
	total := len(items)

	return checkoutpage.List[T]{
		Data:    append([]T{}, items[window.Start:window.End]...),
		HasMore: window.HasMore,
		Total:   &total,
	}
}

func (s *Store) Customer(id string) (checkoutpage.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, customer := range s.customers {
		if customer.ID == id {
			return customer, nil
		}
	}

	return checkoutpage.Customer{}, ErrNotFound //nolint:exhaustruct
}

func (s *Store) Customers(search string, query cursorQuery) (checkoutpage.List[checkoutpage.Customer], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := filter(s.customers, func(c checkoutpage.Customer) bool {
		return search == "" || containsFold(c.Email, search) || containsFold(c.Name, search)
	})

	return cursorPage(matches, func(c checkoutpage.Customer) string { return c.ID }, query)
}

func (s *Store) Coupons(search string, query cursorQuery) (checkoutpage.List[checkoutpage.Coupon], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := filter(s.coupons, func(c checkoutpage.Coupon) bool {
		return !c.Deleted && (search == "" || containsFold(c.Code, search) || containsFold(c.Label, search))
	})

	return cursorPage(matches, func(c checkoutpage.Coupon) string { return c.ID }, query)
}

// CreateCoupon assigns id and timestamps. Codes are unique ignoring case.
func (s *Store) CreateCoupon(coupon checkoutpage.Coupon) (checkoutpage.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.coupons {
		if !existing.Deleted && strings.EqualFold(existing.Code, coupon.Code) {
			return checkoutpage.Coupon{}, fmt.Errorf("%w: %s", ErrDuplicateCode, coupon.Code) //nolint:exhaustruct
		}
	}

	now := s.now().UTC()
	coupon.ID = s.nextID()
	coupon.SellerID = sellerID
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	s.coupons = prepend(s.coupons, coupon)

	return coupon, nil
}

type offsetFilter struct {
	search string
	status string
	pageID string
}

func (f offsetFilter) match(id, status, pageID string) bool {
	return (f.search == "" || containsFold(id, f.search)) &&
		(f.status == "" || f.status == status) &&
		(f.pageID == "" || f.pageID == pageID)
}

func (s *Store) Payments(f offsetFilter, skip, limit int) checkoutpage.List[checkoutpage.Payment] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := filter(s.payments, func(p checkoutpage.Payment) bool {
		return f.match(p.ID, p.Status, p.PageID)
	})

	return offsetPage(matches, skip, limit)
}

func (s *Store) Subscriptions(f offsetFilter, skip, limit int) checkoutpage.List[checkoutpage.Subscription] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := filter(s.subscriptions, func(sub checkoutpage.Subscription) bool {
		return f.match(sub.ID, sub.Status, sub.PageID)
	})

	return offsetPage(matches, skip, limit)
}

func (s *Store) Bookings(f offsetFilter, query cursorQuery) (checkoutpage.List[checkoutpage.Booking], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := filter(s.bookings, func(b checkoutpage.Booking) bool {
		return (f.search == "" || containsFold(b.CustomerEmail, f.search) || containsFold(b.OrderID, f.search)) &&
			(f.status == "" || f.status == b.Status) &&
			(f.pageID == "" || f.pageID == b.PageID)
	})

	return cursorPage(matches, func(b checkoutpage.Booking) string { return b.ID }, query)
}

// TicketCodes lists the QR codes of every ticket in seed order.
func (s *Store) TicketCodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.ticketCodes...)
}

type metadataChange struct {
	key   string
	value *string
}

// ValidateTicket applies the metadata changes and, for a paid ticket, records
// a QR check-in. A nil value removes the key. Canceled tickets are never
// checked in and report success false.
func (s *Store) ValidateTicket(code string, changes []metadataChange) (checkoutpage.TicketValidation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[code]
	if !ok {
		return checkoutpage.TicketValidation{}, ErrNotFound //nolint:exhaustruct
	}

	now := s.now().UTC()

	for _, change := range changes {
		ticket.Metadata = upsertMetadata(ticket.Metadata, change, now)
	}

	success := ticket.Status == checkoutpage.TicketStatusPaid
	if success {
		checkIn := checkoutpage.CheckIn{
			Method:            checkoutpage.CheckInMethodQRScan,
			CheckedInAt:       now,
			CheckedInByUserID: "",
			Status:            checkoutpage.CheckInStatusCheckedIn,
		}

		ticket.CheckIns = append(ticket.CheckIns, checkIn)
		ticket.LatestCheckIn = &checkIn
		ticket.CheckInStatus = checkoutpage.CheckInStatusCheckedIn
	}

	ticket.UpdatedAt = now

	snapshot := *ticket
	snapshot.CheckIns = append([]checkoutpage.CheckIn{}, ticket.CheckIns...)
	snapshot.Metadata = append([]checkoutpage.TicketMetadata(nil), ticket.Metadata...)

	return checkoutpage.TicketValidation{Success: success, Ticket: snapshot}, nil
}

func upsertMetadata(
	metadata []checkoutpage.TicketMetadata,
	change metadataChange,
	now time.Time,
) []checkoutpage.TicketMetadata {
	for idx, entry := range metadata {
		if entry.Key != change.key {
			continue
		}

		if change.value == nil {
			return append(metadata[:idx:idx], metadata[idx+1:]...)
		}

		metadata[idx].Value = *change.value
		metadata[idx].AddedAt = &now

		return metadata
	}

	if change.value == nil {
		return metadata
	}

	return append(metadata, checkoutpage.TicketMetadata{Key: change.key, Value: *change.value, AddedAt: &now})
}
