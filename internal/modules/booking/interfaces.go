package booking

import (
	"context"
	"time"

	"lrbook/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByLRNumber(ctx context.Context, lr string) (*domain.Booking, error)
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) error
}

type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	GetByCode(ctx context.Context, code string) (*domain.Location, error)
	FindByName(ctx context.Context, name string) (*domain.Location, error)
}

type CityRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.City, error)
}

// CustomerResolver finds a customer by phone or GST, creating one when
// nothing matches.
type CustomerResolver interface {
	FindOrCreate(ctx context.Context, party domain.PartySnapshot) (*domain.Customer, error)
}

// EventPublisher receives every committed booking change. Publish must not
// block.
type EventPublisher interface {
	Publish(ev domain.BookingEvent)
}
