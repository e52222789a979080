package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"threadai/internal/model"
	"threadai/internal/testutil"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	user := &model.User{
		Email:    "ada@example.com",
		Name:     "Ada",
		Username: testutil.StringPtr("ada"),
		GoogleID: testutil.StringPtr("g-ada"),
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	lookups := map[string]func() (*model.User, error){
		"id":        func() (*model.User, error) { return repo.FindByID(ctx, user.ID) },
		"email":     func() (*model.User, error) { return repo.FindByEmail(ctx, "ada@example.com") },
		"username":  func() (*model.User, error) { return repo.FindByUsername(ctx, "ada") },
		"google id": func() (*model.User, error) { return repo.FindByGoogleID(ctx, "g-ada") },
	}
	for name, lookup := range lookups {
		t.Run(name, func(t *testing.T) {
			found, err := lookup()
			require.NoError(t, err)
			assert.Equal(t, user.ID, found.ID)
		})
	}

	_, err := repo.FindByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &model.User{Email: "a@example.com", Name: "A", Username: testutil.StringPtr("same")}))

	err := repo.Create(ctx, &model.User{Email: "a@example.com", Name: "B"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = repo.Create(ctx, &model.User{Email: "b@example.com", Name: "B", Username: testutil.StringPtr("same")})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Absent usernames are NULL and never collide.
	require.NoError(t, repo.Create(ctx, &model.User{Email: "c@example.com", Name: "C"}))
	require.NoError(t, repo.Create(ctx, &model.User{Email: "d@example.com", Name: "D"}))
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	user := testutil.CreateUser(t, db, "ada@example.com", "Ada")

	updated, err := repo.Update(ctx, user.ID, func(u model.User) model.User {
		u.Bio = testutil.StringPtr("designer")
		u.ID = "attempted-rewrite"
		return u
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
	assert.Equal(t, "designer", *updated.Bio)
	assert.Equal(t, "Ada", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(user.UpdatedAt))

	_, err = repo.Update(ctx, "missing", func(u model.User) model.User { return u })
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	drafts := NewDraftRepository(db)

	owner := testutil.CreateUser(t, db, "owner@example.com", "Owner")
	other := testutil.CreateUser(t, db, "other@example.com", "Other")

	ownPost := &model.Post{UserID: owner.ID, ImageURL: "a.jpg"}
	require.NoError(t, posts.Create(ctx, ownPost))
	otherPost := &model.Post{UserID: other.ID, ImageURL: "b.jpg"}
	require.NoError(t, posts.Create(ctx, otherPost))
	ownDraft := &model.Draft{UserID: owner.ID, ImageURL: "c.jpg"}
	require.NoError(t, drafts.Create(ctx, ownDraft))

	postCount, draftCount, err := users.CountContent(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), postCount)
	assert.Equal(t, int64(1), draftCount)

	deleted, err := users.Delete(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = posts.FindByID(ctx, ownPost.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = drafts.FindByID(ctx, ownDraft.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = posts.FindByID(ctx, otherPost.ID)
	assert.NoError(t, err)

	deleted, err = users.Delete(ctx, owner.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
