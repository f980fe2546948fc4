package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bucketlist/internal/cache"
	"bucketlist/internal/models"
	"bucketlist/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBucketlist(t *testing.T, f *fixture, owner, title string) *models.Bucketlist {
	t.Helper()
	now := time.Now().UTC()
	b := &models.Bucketlist{Title: title, UsersEmail: owner, DateCreated: now, DateModified: now}
	require.NoError(t, f.bucketlists.Create(context.Background(), b))
	require.NotZero(t, b.ID)
	return b
}

func TestBucketlistRepository_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "a@x.com", "a")
	ctx := context.Background()

	created := createBucketlist(t, f, "a@x.com", "2024")

	got, err := f.bucketlists.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024", got.Title)
	assert.Equal(t, "a@x.com", got.UsersEmail)

	_, err = f.bucketlists.GetByID(ctx, 9999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestBucketlistRepository_DuplicateTitlePerOwner(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "a@x.com", "a")
	testutil.CreateUser(t, f.db, "b@x.com", "b")
	ctx := context.Background()

	createBucketlist(t, f, "a@x.com", "2024")

	dup := &models.Bucketlist{Title: "2024", UsersEmail: "a@x.com"}
	err := f.bucketlists.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeConflict))

	// another owner may reuse the title
	createBucketlist(t, f, "b@x.com", "2024")
}

func TestBucketlistRepository_OwnerMustExist(t *testing.T) {
	f := newFixture(t)

	err := f.bucketlists.Create(context.Background(), &models.Bucketlist{Title: "x", UsersEmail: "ghost@x.com"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
}

func TestBucketlistRepository_GetByIDUsesCache(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "a@x.com", "a")
	ctx := context.Background()

	b := createBucketlist(t, f, "a@x.com", "Travel")

	_, err := f.bucketlists.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, f.mr.Exists(cache.BucketlistKey(b.ID)))

	// a write that bypasses the repository is not visible until the entry is invalidated
	require.NoError(t, f.db.Model(&models.Bucketlist{}).Where("id = ?", b.ID).Update("title", "Sneaky").Error)
	cached, err := f.bucketlists.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel", cached.Title)

	b.Title = "Renamed"
	b.DateModified = time.Now().UTC()
	require.NoError(t, f.bucketlists.Update(ctx, b))
	assert.False(t, f.mr.Exists(cache.BucketlistKey(b.ID)))

	fresh, err := f.bucketlists.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fresh.Title)
}

func TestBucketlistRepository_TransactionBypassesCache(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "a@x.com", "a")
	b := createBucketlist(t, f, "a@x.com", "Travel")

	err := f.tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := f.bucketlists.GetByID(ctx, b.ID)
		return err
	})
	require.NoError(t, err)
	assert.False(t, f.mr.Exists(cache.BucketlistKey(b.ID)))
}

func TestBucketlistRepository_ListByOwner(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "a@x.com", "a")
	testutil.CreateUser(t, f.db, "b@x.com", "b")
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		createBucketlist(t, f, "a@x.com", fmt.Sprintf("Trip %d", i))
	}
	createBucketlist(t, f, "a@x.com", "Books 100%")
	createBucketlist(t, f, "b@x.com", "Trip of someone else")

	all, total, err := f.bucketlists.ListByOwner(ctx, "a@x.com", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, all, 6)
	for _, b := range all {
		assert.Equal(t, "a@x.com", b.UsersEmail)
	}

	page, total, err := f.bucketlists.ListByOwner(ctx, "a@x.com", ListOptions{Query: "TRIP", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, "Trip 3", page[0].Title)
	assert.Equal(t, "Trip 4", page[1].Title)

	literal, total, err := f.bucketlists.ListByOwner(ctx, "a@x.com", ListOptions{Query: "0%"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, literal, 1)
	assert.Equal(t, "Books 100%", literal[0].Title)

	none, total, err := f.bucketlists.ListByOwner(ctx, "nobody@x.com", ListOptions{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBucketlistRepository_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "a@x.com", "a")
	ctx := context.Background()

	first := createBucketlist(t, f, "a@x.com", "One")
	second := createBucketlist(t, f, "a@x.com", "Two")

	second.Title = "One"
	err := f.bucketlists.Update(ctx, second)
	assert.True(t, models.IsCode(err, models.CodeConflict))

	missing := &models.Bucketlist{ID: 9999, Title: "x"}
	assert.True(t, models.IsCode(f.bucketlists.Update(ctx, missing), models.CodeNotFound))

	require.NoError(t, f.bucketlists.Delete(ctx, first.ID))
	_, err = f.bucketlists.GetByID(ctx, first.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	assert.True(t, models.IsCode(f.bucketlists.Delete(ctx, first.ID), models.CodeNotFound))
}
