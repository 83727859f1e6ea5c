package catalog

import (
	"context"

	"lrbook/internal/domain"
)

type CityRepository interface {
	Create(ctx context.Context, c *domain.City) error
	Update(ctx context.Context, c *domain.City) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.City, error)
	List(ctx context.Context, search string) ([]domain.City, error)
}

type LocationRepository interface {
	Create(ctx context.Context, l *domain.Location) error
	Update(ctx context.Context, l *domain.Location) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	List(ctx context.Context, f domain.LocationFilter) ([]domain.Location, error)
}
