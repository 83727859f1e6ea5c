package admin

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

func (m *mockAgentRepo) Create(ctx context.Context, a *domain.Agent) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAgentRepo) Update(ctx context.Context, a *domain.Agent) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *mockAgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *mockAgentRepo) List(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func fakeHash(p string) (string, error) { return "hashed:" + p, nil }

func TestCreateAgent_Defaults(t *testing.T) {
	repo := new(mockAgentRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Agent) bool {
		return a.Email == "asha@example.com" && a.Role == domain.RoleAgent &&
			a.IsActive && a.PasswordHash == "hashed:password1" && a.ID != ""
	})).Return(nil)

	svc := NewService(repo, fakeHash)
	agent, err := svc.CreateAgent(context.Background(), CreateAgentRequest{
		Name: "Asha", Email: "Asha@Example.com", Password: "password1", Location: " Chennai ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Chennai", agent.Location)
	repo.AssertExpectations(t)
}

func TestCreateAgent_DuplicateEmail(t *testing.T) {
	repo := new(mockAgentRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	svc := NewService(repo, fakeHash)
	_, err := svc.CreateAgent(context.Background(), CreateAgentRequest{Name: "A", Email: "a@b.co", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateAgent_InvalidRole(t *testing.T) {
	svc := NewService(new(mockAgentRepo), fakeHash)
	_, err := svc.CreateAgent(context.Background(), CreateAgentRequest{Name: "A", Email: "a@b.co", Password: "password1", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateAgent_LocationSetOnce(t *testing.T) {
	repo := new(mockAgentRepo)
	repo.On("GetByID", mock.Anything, "a1").Return(&domain.Agent{ID: "a1", Name: "Asha", Role: domain.RoleAgent, IsActive: true}, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, fakeHash)
	loc := "Madurai"
	agent, err := svc.UpdateAgent(context.Background(), "a1", UpdateAgentRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Madurai", agent.Location)

	repo.On("GetByID", mock.Anything, "a1").Return(&domain.Agent{ID: "a1", Location: "Madurai"}, nil).Once()
	other := "Chennai"
	_, err = svc.UpdateAgent(context.Background(), "a1", UpdateAgentRequest{Location: &other})
	assert.ErrorIs(t, err, ErrLocationLocked)
}

func TestDeactivateAgent(t *testing.T) {
	repo := new(mockAgentRepo)
	repo.On("GetByID", mock.Anything, "a1").Return(&domain.Agent{ID: "a1", IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Agent) bool { return !a.IsActive })).Return(nil)

	svc := NewService(repo, fakeHash)
	require.NoError(t, svc.DeactivateAgent(context.Background(), "a1"))
	repo.AssertExpectations(t)
}
