package repository

import (
	"testing"

	"bucketlist/internal/cache"
	"bucketlist/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	mr          *miniredis.Miniredis
	cache       *cache.Cache
	users       UserRepository
	bucketlists BucketlistRepository
	items       ItemRepository
	tx          Transactor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	c := cache.New(rdb)

	return &fixture{
		db:          db,
		mr:          mr,
		cache:       c,
		users:       NewUserRepository(db),
		bucketlists: NewBucketlistRepository(db, c),
		items:       NewItemRepository(db),
		tx:          NewTransactor(db),
	}
}
