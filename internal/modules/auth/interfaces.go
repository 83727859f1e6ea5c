package auth

import (
	"context"

	"lrbook/internal/domain"
)

// AgentReader is the part of the agent store login needs.
type AgentReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
}

type TokenIssuer interface {
	GenerateToken(agentID, role, name, location string) (string, error)
}
