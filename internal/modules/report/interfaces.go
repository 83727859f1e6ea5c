package report

import (
	"context"

	"lrbook/internal/domain"
)

type BookingLister interface {
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int64, error)
}
