package customer

import (
	"context"

	"lrbook/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	FindByGST(ctx context.Context, gst string) (*domain.Customer, error)
	List(ctx context.Context, search string, limit int) ([]domain.Customer, error)
}
