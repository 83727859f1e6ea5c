package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lrbook/internal/domain"
	"lrbook/internal/repository"

	"github.com/google/uuid"
)

// Service manages the agent directory.
type Service struct {
	agents AgentRepository
	hash   PasswordHasher
	now    func() time.Time
}

func NewService(agents AgentRepository, hash PasswordHasher) *Service {
	return &Service{agents: agents, hash: hash, now: time.Now}
}

func (s *Service) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.agents.List(ctx)
}

func (s *Service) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return s.agents.GetByID(ctx, id)
}

func (s *Service) CreateAgent(ctx context.Context, req CreateAgentRequest) (*domain.Agent, error) {
	role := domain.AgentRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if role == "" {
		role = domain.RoleAgent
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	agent := &domain.Agent{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Location:     strings.TrimSpace(req.Location),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.agents.Create(ctx, agent); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return agent, nil
}

// UpdateAgent applies the given fields. The location can only be filled in
// once; afterwards it is fixed.
func (s *Service) UpdateAgent(ctx context.Context, id string, req UpdateAgentRequest) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			agent.Name = name
		}
	}
	if req.Location != nil {
		loc := strings.TrimSpace(*req.Location)
		if agent.Location != "" && !strings.EqualFold(agent.Location, loc) {
			return nil, ErrLocationLocked
		}
		if agent.Location == "" {
			agent.Location = loc
		}
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, ErrPasswordTooShort
		}
		hash, err := s.hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		agent.PasswordHash = hash
	}
	if req.IsActive != nil {
		agent.IsActive = *req.IsActive
	}

	agent.UpdatedAt = s.now().UTC()
	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (s *Service) DeactivateAgent(ctx context.Context, id string) error {
	inactive := false
	_, err := s.UpdateAgent(ctx, id, UpdateAgentRequest{IsActive: &inactive})
	return err
}
