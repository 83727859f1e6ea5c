package repository

import (
	"context"
	"time"

	"lrbook/internal/domain"

	"gorm.io/gorm"
)

type CityStore interface {
	Create(ctx context.Context, c *domain.City) error
	Update(ctx context.Context, c *domain.City) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.City, error)
	GetByCode(ctx context.Context, code string) (*domain.City, error)
	List(ctx context.Context, search string) ([]domain.City, error)
}

type LocationStore interface {
	Create(ctx context.Context, l *domain.Location) error
	Update(ctx context.Context, l *domain.Location) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	GetByCode(ctx context.Context, code string) (*domain.Location, error)
	FindByName(ctx context.Context, name string) (*domain.Location, error)
	List(ctx context.Context, f domain.LocationFilter) ([]domain.Location, error)
}

type CustomerStore interface {
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	FindByGST(ctx context.Context, gst string) (*domain.Customer, error)
	List(ctx context.Context, search string, limit int) ([]domain.Customer, error)
}

type AgentStore interface {
	Create(ctx context.Context, a *domain.Agent) error
	Update(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByLRNumber(ctx context.Context, lr string) (*domain.Booking, error)
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) error
}

// Set bundles one implementation of every store. The SQL and document
// backends both produce a Set.
type Set struct {
	Cities    CityStore
	Locations LocationStore
	Customers CustomerStore
	Agents    AgentStore
	Bookings  BookingStore
	Ping      func(ctx context.Context) error
	Close     func(ctx context.Context) error
}

func NewSet(db *gorm.DB) *Set {
	return &Set{
		Cities:    NewCityRepository(db),
		Locations: NewLocationRepository(db),
		Customers: NewCustomerRepository(db),
		Agents:    NewAgentRepository(db),
		Bookings:  NewBookingRepository(db),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func likePattern(s string) string {
	return "%" + s + "%"
}
