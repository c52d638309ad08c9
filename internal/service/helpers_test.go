package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/naimekattor/user-management-app/internal/core/auth"
	"github.com/naimekattor/user-management-app/internal/domain"
	"github.com/naimekattor/user-management-app/internal/repo"
)

type testEnv struct {
	Repo  *repo.UserRepo
	Auth  *AuthService
	Admin *AdminService
	JWTer *auth.JWTer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.User{}))

	jwter := &auth.JWTer{
		Secret: []byte("test-secret"),
		Issuer: "user-management-test",
		TTL:    7 * 24 * time.Hour,
	}
	r := repo.NewUserRepo(db)
	log := zap.NewNop()
	return &testEnv{
		Repo:  r,
		Auth:  NewAuthService(r, jwter, log),
		Admin: NewAdminService(r, nil, 0, log),
		JWTer: jwter,
	}
}
