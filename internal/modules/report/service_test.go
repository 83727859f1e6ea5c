package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lrbook/internal/domain"
)

type MockBookingLister struct {
	mock.Mock
}

func (m *MockBookingLister) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
}

func sample() []domain.Booking {
	return []domain.Booking{
		{LRType: domain.LRPaid, Status: domain.BookingBooked, CreatedAt: day(1), Charges: domain.Charges{TotalAmount: 570}},
		{LRType: domain.LRPaid, Status: domain.BookingDelivered, CreatedAt: day(1), Charges: domain.Charges{TotalAmount: 100.1}},
		{LRType: domain.LRToPay, Status: domain.BookingCancelled, CreatedAt: day(2), Charges: domain.Charges{TotalAmount: 999}},
		{LRType: domain.LROnAccount, Status: domain.BookingRejected, CreatedAt: day(2), Charges: domain.Charges{TotalAmount: 50}},
		{LRType: domain.LRToPay, Status: domain.BookingInTransit, CreatedAt: day(2), Charges: domain.Charges{TotalAmount: 0.2}},
	}
}

func TestSummary_Aggregates(t *testing.T) {
	lister := new(MockBookingLister)
	lister.On("List", mock.Anything, mock.Anything).Return(sample(), int64(5), nil)

	s, err := NewService(lister).Summary(context.Background(), domain.AgentIdentity{ID: "adm", Role: domain.RoleAdmin}, domain.BookingFilter{})
	require.NoError(t, err)

	assert.Equal(t, 5, s.TotalCount)
	assert.Equal(t, 670.3, s.TotalRevenue)

	assert.Equal(t, []Bucket{
		{Key: "on_account", Count: 1, Revenue: 0},
		{Key: "paid", Count: 2, Revenue: 670.1},
		{Key: "to_pay", Count: 2, Revenue: 0.2},
	}, s.ByLRType)
	assert.Equal(t, []Bucket{
		{Key: "2026-03-01", Count: 2, Revenue: 670.1},
		{Key: "2026-03-02", Count: 3, Revenue: 0.2},
	}, s.ByDay)
	assert.Len(t, s.ByStatus, 5)
}

func TestSummary_ScopesAgentsAndNormalizesFilter(t *testing.T) {
	lister := new(MockBookingLister)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	lister.On("List", mock.Anything, domain.BookingFilter{
		AgentID: "agent-1", FromCode: "CHN", DateFrom: &from, DateTo: &to, Limit: maxSummaryRows,
	}).Return([]domain.Booking{}, int64(0), nil)

	agent := domain.AgentIdentity{ID: "agent-1", Role: domain.RoleAgent}
	s, err := NewService(lister).Summary(context.Background(), agent, domain.BookingFilter{
		AgentID: "other", FromCode: " chn ", DateFrom: &from, DateTo: &to, Limit: 10, Offset: 5,
	})
	require.NoError(t, err)
	lister.AssertExpectations(t)

	assert.Equal(t, "2026-03-01", s.DateFrom)
	assert.Equal(t, "2026-03-02", s.DateTo)
	assert.Equal(t, "CHN", s.FromCode)
	assert.Zero(t, s.TotalCount)
	assert.NotNil(t, s.ByDay)
}

func TestSummary_StoreError(t *testing.T) {
	lister := new(MockBookingLister)
	lister.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("down"))

	_, err := NewService(lister).Summary(context.Background(), domain.AgentIdentity{ID: "adm", Role: domain.RoleAdmin}, domain.BookingFilter{})
	assert.Error(t, err)
}

func TestSummary_RejectsUnknownStatus(t *testing.T) {
	lister := new(MockBookingLister)
	_, err := NewService(lister).Summary(context.Background(), domain.AgentIdentity{ID: "adm", Role: domain.RoleAdmin},
		domain.BookingFilter{Status: "lost"})
	assert.True(t, domain.IsValidation(err))
	lister.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSummary_RangeTooLarge(t *testing.T) {
	lister := new(MockBookingLister)
	lister.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingFilter) bool {
		return f.Limit == maxSummaryRows
	})).Return(sample(), int64(maxSummaryRows+1), nil)

	_, err := NewService(lister).Summary(context.Background(), domain.AgentIdentity{ID: "adm", Role: domain.RoleAdmin}, domain.BookingFilter{})
	assert.True(t, domain.IsValidation(err))
	lister.AssertExpectations(t)
}
