package admin

import (
	"context"

	"lrbook/internal/domain"
)

type AgentRepository interface {
	Create(ctx context.Context, a *domain.Agent) error
	Update(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
}

type PasswordHasher func(password string) (string, error)
