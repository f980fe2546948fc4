package bootstrap

import (
	"context"
	"testing"

	"bucketlist/internal/auth"
	"bucketlist/internal/config"
	"bucketlist/internal/models"
	"bucketlist/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() *config.Config {
	return &config.Config{
		Env:               "development",
		BcryptCost:        4,
		DevBootstrapAdmin: true,
		DevAdminEmail:     "Root@Example.com",
		DevAdminUsername:  "root",
		DevAdminPassword:  "changeme",
	}
}

func TestEnsureDevAdmin_CreatesAdmin(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	require.NoError(t, ensureDevAdmin(context.Background(), devConfig(), db))

	var admin models.User
	require.NoError(t, db.Where("email = ?", "root@example.com").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "root", admin.Username)
	assert.True(t, auth.VerifyPassword(admin.PasswordHash, "changeme"))

	// idempotent
	require.NoError(t, ensureDevAdmin(context.Background(), devConfig(), db))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureDevAdmin_PromotesExistingUser(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.CreateUser(t, db, "root@example.com", "existing")

	require.NoError(t, ensureDevAdmin(context.Background(), devConfig(), db))

	var admin models.User
	require.NoError(t, db.Where("email = ?", "root@example.com").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "existing", admin.Username)
}

func TestEnsureDevAdmin_Skipped(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	prod := devConfig()
	prod.Env = "production"
	require.NoError(t, ensureDevAdmin(context.Background(), prod, db))

	disabled := devConfig()
	disabled.DevBootstrapAdmin = false
	require.NoError(t, ensureDevAdmin(context.Background(), disabled, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEnsureDevAdmin_RequiresPassword(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	cfg := devConfig()
	cfg.DevAdminPassword = ""

	assert.Error(t, ensureDevAdmin(context.Background(), cfg, db))
}
