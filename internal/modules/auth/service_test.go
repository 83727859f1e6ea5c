package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lrbook/internal/domain"
	"lrbook/internal/repository"
)

type mockAgentRepo struct {
	mock.Mock
}

func (m *mockAgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *mockAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateToken(agentID, role, name, location string) (string, error) {
	args := m.Called(agentID, role, name, location)
	return args.String(0), args.Error(1)
}

func newAgent(t *testing.T, password string, active bool) *domain.Agent {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &domain.Agent{
		ID:           "agent-1",
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: hash,
		Location:     "Chennai",
		Role:         domain.RoleAgent,
		IsActive:     active,
	}
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockAgentRepo)
	tokens := new(mockTokens)
	agent := newAgent(t, "secret123", true)

	repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(agent, nil)
	tokens.On("GenerateToken", "agent-1", "agent", "Asha", "Chennai").Return("tok", nil)

	svc := NewService(repo, tokens)
	got, token, err := svc.Login(context.Background(), LoginRequest{Email: " Asha@Example.com ", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, agent.ID, got.ID)
	repo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockAgentRepo)
	repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(newAgent(t, "secret123", true), nil)

	svc := NewService(repo, new(mockTokens))
	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockAgentRepo)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	svc := NewService(repo, new(mockTokens))
	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAgent(t *testing.T) {
	repo := new(mockAgentRepo)
	tokens := new(mockTokens)
	repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(newAgent(t, "secret123", false), nil)

	svc := NewService(repo, tokens)
	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAgentInactive)
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
