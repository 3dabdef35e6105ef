package repository

import (
	"context"
	"testing"
	"time"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/testutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(username, first, last, email string) *domain.Client {
	return &domain.Client{
		User: domain.User{
			Username:  username,
			FirstName: testutil.Ptr(first),
			LastName:  testutil.Ptr(last),
			Email:     testutil.Ptr(email),
			Role:      domain.RoleClient,
			Status:    domain.StatusActive,
		},
		ShippingAddress: testutil.Ptr("Av. Central 12"),
	}
}

func TestClientCreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	clients := NewClientRepository(db)
	users := NewUserRepository(db)

	created, err := clients.Create(ctx, newClient("ana@example.com", "Ana", "Lopez", "ana@example.com"))
	require.NoError(t, err)
	require.NotZero(t, created.UserID)
	assert.Equal(t, created.UserID, created.User.ID)
	assert.Equal(t, "Ana", *created.User.FirstName)
	assert.Equal(t, domain.RoleClient, created.User.Role)

	u, err := users.GetByID(ctx, created.UserID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ana@example.com", u.Username)

	byEmail, err := clients.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.UserID, byEmail.UserID)

	missing, err := clients.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClientUpdateTouchesUser(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)
	clients := NewClientRepository(testutil.NewDB(t), WithClock(func() time.Time { return at }))

	created, err := clients.Create(ctx, newClient("luis", "Luis", "Mora", "luis@example.com"))
	require.NoError(t, err)

	updated, err := clients.Update(ctx, created.UserID, domain.ClientPatch{
		UserPatch:      domain.UserPatch{PhoneNumber: testutil.Ptr("+50688887777")},
		BillingAddress: testutil.Ptr("Calle 5"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "+50688887777", *updated.User.PhoneNumber)
	assert.Equal(t, "Calle 5", *updated.BillingAddress)
	assert.Equal(t, "Av. Central 12", *updated.ShippingAddress)
	assert.Equal(t, "Luis", *updated.User.FirstName)
	require.NotNil(t, updated.User.ModificationDate)
	assert.True(t, at.Equal(*updated.User.ModificationDate))
}

func TestClientDeleteRemovesUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	clients := NewClientRepository(db)
	users := NewUserRepository(db)

	created, err := clients.Create(ctx, newClient("gone", "Gone", "Soon", "gone@example.com"))
	require.NoError(t, err)

	ok, err := clients.Delete(ctx, created.UserID)
	require.NoError(t, err)
	assert.True(t, ok)

	u, err := users.GetByID(ctx, created.UserID)
	require.NoError(t, err)
	assert.Nil(t, u)

	ok, err = clients.Delete(ctx, created.UserID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientSearch(t *testing.T) {
	ctx := context.Background()
	clients := NewClientRepository(testutil.NewDB(t))

	_, err := clients.Create(ctx, newClient("maria", "Maria", "Jimenez", "mj@example.com"))
	require.NoError(t, err)
	_, err = clients.Create(ctx, newClient("pedro", "Pedro", "Solis", "ps@mail.net"))
	require.NoError(t, err)

	for query, want := range map[string]int{"mari": 1, "SOLIS": 1, "example": 1, "@": 2, "xyz": 0} {
		got, err := clients.Search(ctx, query)
		require.NoError(t, err)
		assert.Len(t, got, want, query)
	}
}

func TestUserUniqueUsername(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(testutil.NewDB(t))

	_, err := users.Create(ctx, &domain.User{Username: "dup", Role: domain.RoleAdmin, Status: domain.StatusActive})
	require.NoError(t, err)
	_, err = users.Create(ctx, &domain.User{Username: "dup", Role: domain.RoleAdmin, Status: domain.StatusActive})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraintViolation))
}

func TestClientDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	clients := NewClientRepository(db)

	_, err := clients.Create(ctx, newClient("dup", "Ana", "Lopez", "ana@example.com"))
	require.NoError(t, err)
	_, err = clients.Create(ctx, newClient("dup", "Eva", "Solis", "eva@example.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraintViolation), err.Error())

	var users, rows int64
	require.NoError(t, db.Model(&domain.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&domain.Client{}).Count(&rows).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, rows)
}

func TestUserLookupsSkipDeactivated(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(testutil.NewDB(t))

	u, err := users.Create(ctx, &domain.User{
		Username: "old",
		Email:    testutil.Ptr("old@example.com"),
		Role:     domain.RoleAdmin,
		Status:   domain.StatusActive,
	})
	require.NoError(t, err)

	got, err := users.GetByUsername(ctx, "old")
	require.NoError(t, err)
	require.NotNil(t, got)

	deleted := time.Now().UTC()
	inactive := domain.StatusInactive
	_, err = users.Update(ctx, u.ID, domain.UserPatch{Status: &inactive, DeleteDate: &deleted})
	require.NoError(t, err)

	got, err = users.GetByUsername(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = users.GetByEmail(ctx, "old@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	// the name is free again once the holder is deactivated
	_, err = users.Create(ctx, &domain.User{Username: "old", Role: domain.RoleAdmin, Status: domain.StatusActive})
	require.NoError(t, err)
}

func TestUserPurgeDeletedBefore(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	clients := NewClientRepository(db)
	admins := NewAdminRepository(db)

	c, err := clients.Create(ctx, newClient("c1", "C", "One", "c1@example.com"))
	require.NoError(t, err)
	a, err := admins.Create(ctx, &domain.Admin{
		User:        domain.User{Username: "a1", Role: domain.RoleAdmin, Status: domain.StatusActive},
		Permissions: []domain.AdminPermission{{Permission: domain.PermissionRead}},
	})
	require.NoError(t, err)
	keep, err := clients.Create(ctx, newClient("c2", "C", "Two", "c2@example.com"))
	require.NoError(t, err)

	past := time.Now().UTC().Add(-48 * time.Hour)
	for _, id := range []int64{c.UserID, a.UserID} {
		_, err := users.Update(ctx, id, domain.UserPatch{DeleteDate: &past})
		require.NoError(t, err)
	}

	n, err := users.PurgeDeletedBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := clients.GetByID(ctx, c.UserID)
	require.NoError(t, err)
	assert.Nil(t, got)
	gotAdmin, err := admins.GetByID(ctx, a.UserID)
	require.NoError(t, err)
	assert.Nil(t, gotAdmin)
	kept, err := clients.GetByID(ctx, keep.UserID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestAdminReplacePermissions(t *testing.T) {
	ctx := context.Background()
	admins := NewAdminRepository(testutil.NewDB(t))

	a, err := admins.Create(ctx, &domain.Admin{
		User:        domain.User{Username: "boss", Role: domain.RoleAdmin, Status: domain.StatusActive},
		Departments: []domain.AdminDepartment{{Department: domain.DepartmentSales}},
		Permissions: []domain.AdminPermission{{Permission: domain.PermissionRead}},
	})
	require.NoError(t, err)
	require.Len(t, a.Permissions, 1)
	require.Len(t, a.Departments, 1)

	got, err := admins.ReplacePermissions(ctx, a.UserID, []domain.Permission{domain.PermissionWrite, domain.PermissionDelete})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Permissions, 2)
	assert.True(t, got.HasPermission(domain.PermissionWrite))
	assert.False(t, got.HasPermission(domain.PermissionRead))

	got, err = admins.ReplaceDepartments(ctx, a.UserID, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Departments)

	missing, err := admins.ReplacePermissions(ctx, 12345, []domain.Permission{domain.PermissionRead})
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := admins.Delete(ctx, a.UserID)
	require.NoError(t, err)
	assert.True(t, ok)
}
