package app

import (
	"context"
	"testing"
	"time"

	"github.com/gemtrack/gemtrack/config"
	"github.com/gemtrack/gemtrack/internal/service"
	"github.com/gemtrack/gemtrack/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	cfg.Security.AdminPassword = "admin-pw"
	cfg.Inventory.LowStockReport = ""

	a := NewApplication(cfg)
	a.OverrideDB(testutil.NewDB(t))
	require.NoError(t, a.Init())
	t.Cleanup(a.Release)
	return a
}

func TestInitSeedsAdminAndCategories(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	u, err := a.Services().Users.AuthenticateUser(ctx, "admin", "admin-pw")
	require.NoError(t, err)
	admin, err := a.Services().Users.GetAdmin(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.HasPermission("delete"))

	cats, err := a.Services().Categories.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(defaultCategories))

	// seeding twice is a no-op
	a.checkSuper(ctx)
	a.checkCategories(ctx)
	cats, err = a.Services().Categories.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(defaultCategories))
	users, err := a.Services().Users.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	assert.NotNil(t, a.Scheduler())
	assert.Len(t, a.Scheduler().Entries(), 1)
}

func TestScheduledTasks(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	svc := a.Services()

	_, err := svc.Products.CreateNewProduct(ctx, service.ProductInput{
		SKU:            "LOW-1",
		Name:           "Low ring",
		BuyingPrice:    decimal.NewFromInt(1),
		SuggestedPrice: decimal.NewFromInt(2),
		Stock:          1,
	})
	require.NoError(t, err)
	a.SchedLowStockReportTask()

	c, err := svc.Clients.CreateNewClient(ctx, service.ClientInput{Username: "old", FirstName: "O", LastName: "L"})
	require.NoError(t, err)
	_, err = svc.Users.DeactivateUser(ctx, c.UserID)
	require.NoError(t, err)

	a.appConfig.Inventory.UserRetentionDays = 0
	a.SchedPurgeUsersTask()
	got, err := svc.Clients.GetClientDetails(ctx, c.UserID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	n, err := svc.Users.PurgeDeleted(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
