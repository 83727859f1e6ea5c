package report

import (
	"context"
	"sort"
	"strings"

	"lrbook/internal/domain"

	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// maxSummaryRows bounds how many bookings one summary loads into memory.
// Wider ranges must be narrowed by the caller.
const maxSummaryRows = 50000

type Service struct {
	bookings BookingLister
}

func NewService(bookings BookingLister) *Service {
	return &Service{bookings: bookings}
}

type accumulator struct {
	count   int
	revenue decimal.Decimal
}

func (a *accumulator) add(b *domain.Booking) {
	a.count++
	if countsAsRevenue(b.Status) {
		a.revenue = a.revenue.Add(decimal.NewFromFloat(b.Charges.TotalAmount))
	}
}

// countsAsRevenue excludes bookings that were never carried.
func countsAsRevenue(s domain.BookingStatus) bool {
	return s != domain.BookingCancelled && s != domain.BookingRejected
}

// Summary aggregates bookings matching the filter. Agents only see their own
// bookings; cancelled and rejected bookings are counted but earn nothing.
func (s *Service) Summary(ctx context.Context, agent domain.AgentIdentity, f domain.BookingFilter) (*Summary, error) {
	if !agent.IsAdmin() {
		f.AgentID = agent.ID
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	if f.LRType != "" && !f.LRType.Valid() {
		return nil, domain.NewValidationError("lr_type", "unknown lr_type")
	}
	f.FromCode = domain.NormalizeCode(f.FromCode)
	f.Limit, f.Offset = maxSummaryRows, 0

	items, matched, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if matched > int64(len(items)) {
		return nil, domain.NewValidationError("date_from", "too many bookings in range, narrow the dates")
	}

	var total accumulator
	byType := map[string]*accumulator{}
	byStatus := map[string]*accumulator{}
	byDay := map[string]*accumulator{}
	bump := func(m map[string]*accumulator, key string, b *domain.Booking) {
		a, ok := m[key]
		if !ok {
			a = &accumulator{}
			m[key] = a
		}
		a.add(b)
	}

	for i := range items {
		b := &items[i]
		total.add(b)
		bump(byType, string(b.LRType), b)
		bump(byStatus, string(b.Status), b)
		bump(byDay, b.CreatedAt.UTC().Format(dayLayout), b)
	}

	out := &Summary{
		FromCode:     f.FromCode,
		TotalCount:   total.count,
		TotalRevenue: total.revenue.Round(2).InexactFloat64(),
		ByLRType:     buckets(byType),
		ByStatus:     buckets(byStatus),
		ByDay:        buckets(byDay),
	}
	if f.DateFrom != nil {
		out.DateFrom = f.DateFrom.Format(dayLayout)
	}
	if f.DateTo != nil {
		// DateTo is the exclusive bound, one day past the requested date.
		out.DateTo = f.DateTo.AddDate(0, 0, -1).Format(dayLayout)
	}
	return out, nil
}

func buckets(m map[string]*accumulator) []Bucket {
	out := make([]Bucket, 0, len(m))
	for k, a := range m {
		out = append(out, Bucket{Key: k, Count: a.count, Revenue: a.revenue.Round(2).InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Key, out[j].Key) < 0 })
	return out
}
