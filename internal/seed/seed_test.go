package seed

import (
	"context"
	"regexp"
	"testing"

	"bucketlist/internal/auth"
	"bucketlist/internal/models"
	"bucketlist/internal/testutil"
	"bucketlist/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_BuildUserIsValid(t *testing.T) {
	f := NewFactory(42)
	for n := 1; n <= 50; n++ {
		u := f.BuildUser(n, "hash")
		assert.NoError(t, validation.ValidateEmail(u.Email), u.Email)
		assert.NoError(t, validation.ValidateUsername(u.Username), u.Username)
		assert.NoError(t, validation.ValidateName("first_name", u.FirstName))
		assert.Regexp(t, regexp.MustCompile(`\d+$`), u.Username)
	}
}

func TestFactory_Deterministic(t *testing.T) {
	a := NewFactory(7).BuildUser(1, "")
	b := NewFactory(7).BuildUser(1, "")
	assert.Equal(t, a.Email, b.Email)
}

func TestSeed(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	opts := Options{
		NumUsers:           3,
		BucketlistsPerUser: 2,
		ItemsPerList:       4,
		Password:           "demo",
		BcryptCost:         4,
		RandomSeed:         1,
	}
	summary, err := Seed(ctx, db, opts)
	require.NoError(t, err)
	assert.Len(t, summary.Users, 3)
	assert.Equal(t, 6, summary.Bucketlists)
	assert.Equal(t, 24, summary.Items)
	assert.True(t, auth.VerifyPassword(summary.Users[0].PasswordHash, "demo"))

	var items int64
	require.NoError(t, db.Model(&models.Item{}).Count(&items).Error)
	assert.Equal(t, int64(24), items)

	// a clean reseed replaces the data instead of colliding with it
	opts.ShouldClean = true
	_, err = Seed(ctx, db, opts)
	require.NoError(t, err)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(3), users)
}

func TestSeed_RequiresPassword(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	_, err := Seed(context.Background(), db, Options{NumUsers: 1})
	assert.Error(t, err)
}
