package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"threadai/internal/model"
	"threadai/internal/testutil"
)

func TestPostRepository_CreateLoadsOwner(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	owner := testutil.CreateUser(t, db, "ada@example.com", "Ada")

	post := &model.Post{UserID: owner.ID, ImageURL: "look.jpg", Tags: []string{"street", "denim"}}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Ada", post.User.Name)

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"street", "denim"}, found.Tags)
	assert.Equal(t, 0, found.Likes)
	assert.Equal(t, 0, found.Saves)
	assert.Equal(t, owner.ID, found.User.ID)
}

func TestPostRepository_ListPaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ada := testutil.CreateUser(t, db, "ada@example.com", "Ada")
	bob := testutil.CreateUser(t, db, "bob@example.com", "Bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		owner := ada
		if i%5 == 0 {
			owner = bob
		}
		post := &model.Post{
			UserID:    owner.ID,
			ImageURL:  fmt.Sprintf("%02d.jpg", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, post))
	}

	page, total, err := repo.List(ctx, 0, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, page, 10)
	assert.Equal(t, "24.jpg", page[0].ImageURL)
	assert.Equal(t, "15.jpg", page[9].ImageURL)
	assert.NotEmpty(t, page[0].User.Name)

	page, _, err = repo.List(ctx, 20, 10, "")
	require.NoError(t, err)
	assert.Len(t, page, 5)

	page, total, err = repo.List(ctx, 0, 10, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 5)
	for _, p := range page {
		assert.Equal(t, bob.ID, p.UserID)
	}
}

func TestPostRepository_UpdateKeepsCounters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	owner := testutil.CreateUser(t, db, "ada@example.com", "Ada")
	post := &model.Post{UserID: owner.ID, ImageURL: "look.jpg", Tags: []string{"old"}}
	require.NoError(t, repo.Create(ctx, post))
	_, err := repo.Increment(ctx, post.ID, CounterLikes)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, post.ID, func(p model.Post) model.Post {
		p.Title = testutil.StringPtr("Fall fit")
		p.Tags = []string{"new"}
		p.Likes = 0
		return p
	})
	require.NoError(t, err)
	assert.Equal(t, "Fall fit", *updated.Title)
	assert.Equal(t, []string{"new"}, updated.Tags)
	assert.Equal(t, 1, updated.Likes)
	assert.Equal(t, "Ada", updated.User.Name)

	_, err = repo.Update(ctx, "missing", func(p model.Post) model.Post { return p })
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_IncrementIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	owner := testutil.CreateUser(t, db, "ada@example.com", "Ada")
	post := &model.Post{UserID: owner.ID, ImageURL: "look.jpg"}
	require.NoError(t, repo.Create(ctx, post))

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Increment(ctx, post.ID, CounterLikes)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	saved, err := repo.Increment(ctx, post.ID, CounterSaves)
	require.NoError(t, err)
	assert.Equal(t, n, saved.Likes)
	assert.Equal(t, 1, saved.Saves)
	assert.False(t, saved.UpdatedAt.Before(saved.CreatedAt))

	_, err = repo.Increment(ctx, "missing", CounterLikes)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.Increment(ctx, post.ID, Counter("views"))
	assert.Error(t, err)
}

func TestPostRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	owner := testutil.CreateUser(t, db, "ada@example.com", "Ada")
	post := &model.Post{UserID: owner.ID, ImageURL: "look.jpg"}
	require.NoError(t, repo.Create(ctx, post))

	deleted, err := repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
