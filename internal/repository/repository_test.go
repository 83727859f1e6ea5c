package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lrbook/internal/database"
	"lrbook/internal/domain"
	"lrbook/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newBooking(lr string, agentID string, created time.Time) *domain.Booking {
	return &domain.Booking{
		ID:           uuid.NewString(),
		LRNumber:     lr,
		LRType:       domain.LRPaid,
		FromLocation: domain.LocationSnapshot{LocationID: "loc-chn", Name: "Chennai", Code: "CHN"},
		ToLocation:   domain.LocationSnapshot{Name: "Madurai", Code: "MDU"},
		Sender:       domain.PartySnapshot{Name: "Ravi Traders", Phone: "9000000001"},
		Receiver:     domain.PartySnapshot{Name: "Meena Stores", Phone: "9000000002"},
		Items:        []domain.BookingItem{{Description: "Boxes", Quantity: 5, Weight: 20, FreightCharge: 500}},
		Charges:      domain.Charges{ItemFreightSubtotal: 500, HandlingCharges: 50, LRCharges: 20, TotalAmount: 570},
		Status:       domain.BookingBooked,
		AgentID:      agentID,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestBookingRepository_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(setupDB(t))

	b := newBooking("LR-CHN-PD-ABC123", "agent-1", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByLRNumber(ctx, "lr-chn-pd-abc123")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "CHN", got.FromLocation.Code)
	assert.Equal(t, "Meena Stores", got.Receiver.Name)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Boxes", got.Items[0].Description)
	assert.Equal(t, 570.0, got.Charges.TotalAmount)
	assert.Equal(t, 50.0, got.Charges.HandlingCharges)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingRepository_DuplicateLRNumber(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(setupDB(t))

	require.NoError(t, repo.Create(ctx, newBooking("LR-CHN-PD-AAAAAA", "a", time.Now())))
	err := repo.Create(ctx, newBooking("LR-CHN-PD-AAAAAA", "a", time.Now()))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestBookingRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(setupDB(t))

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newBooking("LR-CHN-PD-000001", "a1", day)))
	require.NoError(t, repo.Create(ctx, newBooking("LR-CHN-PD-000002", "a1", day.Add(time.Hour))))
	other := newBooking("LR-CHN-TP-000003", "a2", day.AddDate(0, 0, 1))
	other.LRType = domain.LRToPay
	other.Sender.Name = "Kumar Agencies"
	require.NoError(t, repo.Create(ctx, other))

	all, total, err := repo.List(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, "LR-CHN-TP-000003", all[0].LRNumber, "newest first")

	mine, total, err := repo.List(ctx, domain.BookingFilter{AgentID: "a1", Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, mine, 1)

	end := day.AddDate(0, 0, 1)
	sameDay, _, err := repo.List(ctx, domain.BookingFilter{DateFrom: &day, DateTo: &end})
	require.NoError(t, err)
	assert.Len(t, sameDay, 2)

	byType, _, err := repo.List(ctx, domain.BookingFilter{LRType: domain.LRToPay})
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	byName, _, err := repo.List(ctx, domain.BookingFilter{Query: "kumar"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "LR-CHN-TP-000003", byName[0].LRNumber)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(setupDB(t))

	b := newBooking("LR-CHN-PD-STAT01", "a", time.Now())
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.BookingBooked, domain.BookingInTransit, time.Now()))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingInTransit, got.Status)
	assert.Equal(t, "LR-CHN-PD-STAT01", got.LRNumber)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "nope", domain.BookingBooked, domain.BookingDelivered, time.Now()), repository.ErrNotFound)
}

func TestBookingRepository_UpdateStatus_StaleExpectedStatus(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingRepository(setupDB(t))

	b := newBooking("LR-CHN-PD-STAT02", "a", time.Now())
	b.Status = domain.BookingUnloaded
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.BookingUnloaded, domain.BookingDelivered, time.Now()))

	err := repo.UpdateStatus(ctx, b.ID, domain.BookingUnloaded, domain.BookingCancelled, time.Now())
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingDelivered, got.Status)
}

func TestCustomerRepository_UniquePhoneAndGST(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCustomerRepository(setupDB(t))

	first := &domain.Customer{ID: uuid.NewString(), Name: "Ravi", Phone: "9000000001", GSTNumber: "33abcde1234f1z5"}
	require.NoError(t, repo.Create(ctx, first))

	samePhone := &domain.Customer{ID: uuid.NewString(), Name: "Other", Phone: "9000000001"}
	assert.ErrorIs(t, repo.Create(ctx, samePhone), repository.ErrDuplicate)

	sameGST := &domain.Customer{ID: uuid.NewString(), Name: "Other", Phone: "9000000009", GSTNumber: "33ABCDE1234F1Z5"}
	assert.ErrorIs(t, repo.Create(ctx, sameGST), repository.ErrDuplicate)

	// customers without GST never collide with each other
	require.NoError(t, repo.Create(ctx, &domain.Customer{ID: uuid.NewString(), Name: "A", Phone: "1"}))
	require.NoError(t, repo.Create(ctx, &domain.Customer{ID: uuid.NewString(), Name: "B", Phone: "2"}))

	byGST, err := repo.FindByGST(ctx, "33abcde1234f1z5")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byGST.ID)

	byPhone, err := repo.FindByPhone(ctx, " 9000000001 ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byPhone.ID)

	_, err = repo.FindByPhone(ctx, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	found, err := repo.List(ctx, "rav", 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestLocationRepository_FindByNameAndSearch(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	cities := repository.NewCityRepository(db)
	locations := repository.NewLocationRepository(db)

	city := &domain.City{ID: uuid.NewString(), Name: "Chennai", Code: "chn"}
	require.NoError(t, cities.Create(ctx, city))
	assert.Equal(t, "CHN", city.Code)

	loc := &domain.Location{ID: uuid.NewString(), Name: "Chennai", Code: "CHN", CityID: city.ID, Status: domain.LocationActive}
	require.NoError(t, locations.Create(ctx, loc))
	require.NoError(t, locations.Create(ctx, &domain.Location{
		ID: uuid.NewString(), Name: "Chennai Port", Code: "CPT", CityID: city.ID, Status: domain.LocationInactive,
	}))

	got, err := locations.FindByName(ctx, "  chennai ")
	require.NoError(t, err)
	assert.Equal(t, loc.ID, got.ID)

	_, err = locations.FindByName(ctx, "Chen")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	matches, err := locations.List(ctx, domain.LocationFilter{Search: "chennai"})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	active, err := locations.List(ctx, domain.LocationFilter{Search: "chennai", Status: domain.LocationActive})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	dup := &domain.Location{ID: uuid.NewString(), Name: "Dup", Code: "CHN", CityID: city.ID, Status: domain.LocationActive}
	assert.ErrorIs(t, locations.Create(ctx, dup), repository.ErrDuplicate)
}

func TestAgentRepository_EmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAgentRepository(setupDB(t))

	a := &domain.Agent{ID: uuid.NewString(), Name: "Asha", Email: "Asha@Example.com", PasswordHash: "x", Role: domain.RoleAgent, IsActive: true}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByEmail(ctx, "asha@example.COM")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	dup := &domain.Agent{ID: uuid.NewString(), Name: "Other", Email: "asha@example.com", PasswordHash: "x", Role: domain.RoleAgent}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)
}
