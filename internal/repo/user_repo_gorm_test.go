package repo

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/naimekattor/user-management-app/internal/domain"
	"github.com/naimekattor/user-management-app/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return db
}

func seedUser(t *testing.T, r *UserRepo, name, email string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, r.Create(context.Background(), u))
	return u
}

func TestUserRepo_EmailNormalizedAndUnique(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	seedUser(t, r, "A", "  A@X.com ")

	got, err := r.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@x.com", got.Email)

	// same address in different case must hit the unique index
	dup := &domain.User{ID: utils.NewID(), Name: "B", Email: "A@x.COM", PasswordHash: "x"}
	err = r.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestUserRepo_FindMissingReturnsNil(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	u, err := r.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = r.FindByEmail(ctx, "nope@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_ListOrdersByLastLoginNullsLast(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	never := seedUser(t, r, "never", "never@x.com")
	old := seedUser(t, r, "old", "old@x.com")
	recent := seedUser(t, r, "recent", "recent@x.com")

	require.NoError(t, r.UpdateLastLogin(ctx, old.ID, time.Now().Add(-24*time.Hour)))
	require.NoError(t, r.UpdateLastLogin(ctx, recent.ID, time.Now()))

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, recent.ID, users[0].ID)
	assert.Equal(t, old.ID, users[1].ID)
	assert.Equal(t, never.ID, users[2].ID)
	assert.Nil(t, users[2].LastLogin)
}

func TestUserRepo_SetBlockedIgnoresUnmatched(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	u := seedUser(t, r, "A", "a@x.com")

	require.NoError(t, r.SetBlocked(ctx, []string{u.ID, "ghost"}, true))
	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked)

	require.NoError(t, r.SetBlocked(ctx, []string{u.ID}, false))
	got, err = r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsBlocked)
}

func TestUserRepo_DeleteByIDsIsPermanent(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	a := seedUser(t, r, "A", "a@x.com")
	b := seedUser(t, r, "B", "b@x.com")

	require.NoError(t, r.DeleteByIDs(ctx, []string{a.ID, "ghost"}))

	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, b.ID, users[0].ID)
}
