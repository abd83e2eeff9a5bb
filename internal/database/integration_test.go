package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// liveManager connects to the backends named by COFFEEHUB_IT_CREDENTIALS,
// seeds what is missing and selects the databases.
func liveManager(t *testing.T) (*Manager, *config.Credentials) {
	t.Helper()
	path := os.Getenv("COFFEEHUB_IT_CREDENTIALS")
	if path == "" {
		t.Skip("COFFEEHUB_IT_CREDENTIALS not set")
	}
	creds, err := config.LoadCredentials(path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	m := NewManager()
	t.Cleanup(m.Disconnect)
	require.NoError(t, m.Connect(ctx, creds))

	seeder, err := m.Seeder()
	require.NoError(t, err)
	_, err = seeder.SeedMissing(ctx)
	require.NoError(t, err)
	require.NoError(t, m.SelectDatabases(ctx))
	return m, creds
}

func TestLive_ReconnectYieldsSameResults(t *testing.T) {
	ctx := context.Background()
	m, creds := liveManager(t)

	repo, err := m.Repository()
	require.NoError(t, err)
	productsBefore, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	jobsBefore, err := repo.ListJobs(ctx)
	require.NoError(t, err)

	m.Disconnect()
	require.NoError(t, m.Connect(ctx, creds))
	require.NoError(t, m.SelectDatabases(ctx))
	require.NoError(t, m.SelectDatabases(ctx))

	repo, err = m.Repository()
	require.NoError(t, err)
	productsAfter, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	jobsAfter, err := repo.ListJobs(ctx)
	require.NoError(t, err)

	assert.Equal(t, len(productsBefore), len(productsAfter))
	assert.Equal(t, jobsBefore, jobsAfter)
}

func TestLive_SeedIsNoopWhenPresent(t *testing.T) {
	m, _ := liveManager(t)

	seeder, err := m.Seeder()
	require.NoError(t, err)
	seeded, err := seeder.SeedMissing(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seeded)
}

func TestLive_ProductNextID(t *testing.T) {
	ctx := context.Background()
	m, _ := liveManager(t)
	products, err := m.Products()
	require.NoError(t, err)

	id, err := products.NextProductID(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = products.DeleteProduct(context.Background(), id) })

	require.NoError(t, products.UpsertProduct(ctx, &models.Product{
		ID: id, Name: "Test Brew", OnSaleFrom: time.Now(), Price: 1000, Type: "CF",
	}))
	next, err := products.NextProductID(ctx)
	require.NoError(t, err)
	assert.Greater(t, next, id)
}

func TestLive_EmployeeUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	m, _ := liveManager(t)
	employees, err := m.Employees()
	require.NoError(t, err)

	e := &models.Employee{ID: "EN-it", Name: "Integration", Birth: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Job: "Barista", Department: "Service", Branch: "District 1"}
	require.NoError(t, employees.UpsertEmployee(ctx, e))
	e.Job, e.Department, e.Branch = "Manager", "Finance", "Thu Duc"
	require.NoError(t, employees.UpsertEmployee(ctx, e))

	list, err := employees.ListEmployees(ctx)
	require.NoError(t, err)
	rows := 0
	for _, got := range list {
		if got.ID == e.ID {
			rows++
			assert.Equal(t, "Manager", got.Job)
		}
	}
	assert.Equal(t, 1, rows, "stale relationships would duplicate the row")

	require.NoError(t, employees.DeleteEmployee(ctx, e.ID))
	require.NoError(t, employees.DeleteEmployee(ctx, e.ID))
	list, err = employees.ListEmployees(ctx)
	require.NoError(t, err)
	for _, got := range list {
		assert.NotEqual(t, e.ID, got.ID)
	}
}

func TestLive_MemberLoginAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := liveManager(t)
	members, err := m.Members()
	require.NoError(t, err)

	result, member, err := members.Login(ctx, "annguyen", "coffee123")
	require.NoError(t, err)
	require.Equal(t, models.LoginSuccess, result)
	assert.Equal(t, "TCHMN00001S", member.ID)

	result, _, err = members.Login(ctx, "annguyen", "wrong")
	require.NoError(t, err)
	assert.Equal(t, models.LoginWrongPassword, result)

	_, err = members.GetMember(ctx, "TCHMN-missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	member.Phone = "0999999999"
	member.Avatar = "assets/avatars/it.png"
	require.NoError(t, members.SaveProfile(ctx, member))
	back, err := members.GetMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.Phone, back.Phone)
	avatar, err := members.GetAvatarPath(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.Avatar, avatar)
}
