package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/order-dashboard/config"
	"github.com/yeremiapane/order-dashboard/database"
)

type testEnv struct {
	DB        *gorm.DB
	Store     *database.LocalStore
	Directory *database.Directory
	Session   *Session
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database.SecretHashCost = bcrypt.MinCost

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	store := database.NewLocalStore(database.NewGormKVStore(db))
	return &testEnv{
		DB:        db,
		Store:     store,
		Directory: database.NewDirectory(db),
		Session:   NewSession(store),
	}
}

func (env *testEnv) auth(mode config.AuthMode, backend AuthBackend) *AuthService {
	return NewAuthService(mode, backend, env.Directory, env.Store, env.Session)
}
