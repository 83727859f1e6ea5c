package provision_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrbook/internal/database"
	"lrbook/internal/domain"
	"lrbook/internal/provision"
	"lrbook/internal/repository"
)

func plainHash(p string) (string, error) { return "hashed:" + p, nil }

func newRepos(t *testing.T) *repository.Set {
	t.Helper()
	db, err := database.Connect(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return repository.NewSet(db)
}

func TestRun_Idempotent(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	opts := provision.Options{
		AdminEmail:          " Admin@Example.com ",
		AdminPassword:       "admin-password",
		SeedDefaultLocation: true,
		DefaultLocation:     "Hyderabad",
		DefaultCode:         "hyd",
	}

	res, err := provision.Run(ctx, repos, plainHash, opts)
	require.NoError(t, err)
	assert.Equal(t, provision.Result{AdminCreated: true, CityCreated: true, LocationCreated: true}, res)

	admin, err := repos.Agents.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.Equal(t, "hashed:admin-password", admin.PasswordHash)

	loc, err := repos.Locations.FindByName(ctx, "hyderabad")
	require.NoError(t, err)
	assert.Equal(t, "HYD", loc.Code)

	res, err = provision.Run(ctx, repos, plainHash, opts)
	require.NoError(t, err)
	assert.Equal(t, provision.Result{}, res)
}

func TestRun_RequiresCredentials(t *testing.T) {
	repos := newRepos(t)
	_, err := provision.Run(context.Background(), repos, plainHash, provision.Options{AdminEmail: "a@b.c", AdminPassword: "short"})
	assert.Error(t, err)
	_, err = provision.Run(context.Background(), repos, plainHash, provision.Options{AdminPassword: "long-enough"})
	assert.Error(t, err)
}
