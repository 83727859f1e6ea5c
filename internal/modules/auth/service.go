package auth

import (
	"context"
	"errors"
	"strings"

	"lrbook/internal/domain"
	"lrbook/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	agents AgentReader
	tokens TokenIssuer
}

func NewService(agents AgentReader, tokens TokenIssuer) *Service {
	return &Service{agents: agents, tokens: tokens}
}

// Login checks the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Agent, string, error) {
	agent, err := s.agents.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// burn comparable time so unknown emails are not distinguishable
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !agent.IsActive {
		return nil, "", ErrAgentInactive
	}

	token, err := s.tokens.GenerateToken(agent.ID, string(agent.Role), agent.Name, agent.Location)
	if err != nil {
		return nil, "", err
	}
	return agent, token, nil
}

func (s *Service) GetCurrentAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return s.agents.GetByID(ctx, id)
}

// HashPassword is shared with the agent directory and cmd/provision.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("lrbook-dummy-password"), bcrypt.MinCost)

func ToAgentResponse(a *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Location: a.Location,
		Role:     string(a.Role),
		IsActive: a.IsActive,
	}
}
