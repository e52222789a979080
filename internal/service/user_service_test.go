package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadai/internal/auth"
	apperrors "threadai/internal/errors"
	"threadai/internal/schema"
	"threadai/internal/testutil"
)

func TestUserService_CreateAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, err := f.users.Create(ctx, schema.UserCreate{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	b, err := f.users.Create(ctx, schema.UserCreate{Email: "b@example.com", Name: "B"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestUserService_CreateConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.users.CreateFromIdentity(ctx, &auth.Identity{Subject: "g-1", Email: "g@example.com", Name: "G"})
	require.NoError(t, err)
	_, err = f.users.Create(ctx, schema.UserCreate{
		Email:    "a@example.com",
		Name:     "A",
		Username: testutil.StringPtr("ada"),
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   schema.UserCreate
	}{
		{name: "email", in: schema.UserCreate{Email: "a@example.com", Name: "B"}},
		{name: "username", in: schema.UserCreate{Email: "b@example.com", Name: "B", Username: testutil.StringPtr("ada")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Create(ctx, tt.in)
			assert.ErrorIs(t, err, apperrors.ErrUserConflict)
		})
	}

	_, err = f.users.CreateFromIdentity(ctx, &auth.Identity{Subject: "g-1", Email: "c@example.com", Name: "C"})
	assert.ErrorIs(t, err, apperrors.ErrUserConflict)
}

func TestUserService_Lookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.users.Create(ctx, schema.UserCreate{
		Email:    "a@example.com",
		Name:     "A",
		Username: testutil.StringPtr("ada"),
	})
	require.NoError(t, err)
	_, err = f.users.LinkGoogleAccount(ctx, created.ID, "g-1", "")
	require.NoError(t, err)

	user, err := f.users.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	user, err = f.users.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	user, err = f.users.GetByGoogleID(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = f.users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = f.users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_GetByIDIsCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.users.Create(ctx, schema.UserCreate{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)

	_, err = f.users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, f.mr.Exists("user:"+created.ID))

	_, err = f.users.Update(ctx, created.ID, schema.UserUpdate{Name: testutil.StringPtr("Ada")})
	require.NoError(t, err)
	assert.False(t, f.mr.Exists("user:"+created.ID))

	user, err := f.users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
}

func TestUserService_UpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.users.Create(ctx, schema.UserCreate{
		Email: "a@example.com",
		Name:  "A",
		Bio:   testutil.StringPtr("hello"),
	})
	require.NoError(t, err)

	unchanged, err := f.users.Update(ctx, created.ID, schema.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "A", unchanged.Name)
	assert.Equal(t, "hello", *unchanged.Bio)
	assert.Equal(t, created.Email, unchanged.Email)
	assert.False(t, unchanged.UpdatedAt.Before(created.UpdatedAt))

	updated, err := f.users.Update(ctx, created.ID, schema.UserUpdate{Username: testutil.StringPtr("ada")})
	require.NoError(t, err)
	assert.Equal(t, "ada", *updated.Username)
	assert.Equal(t, "hello", *updated.Bio)

	_, err = f.users.Update(ctx, "missing", schema.UserUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_UpdateUsernameConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.users.Create(ctx, schema.UserCreate{Email: "a@example.com", Name: "A", Username: testutil.StringPtr("taken")})
	require.NoError(t, err)
	b, err := f.users.Create(ctx, schema.UserCreate{Email: "b@example.com", Name: "B"})
	require.NoError(t, err)

	_, err = f.users.Update(ctx, b.ID, schema.UserUpdate{Username: testutil.StringPtr("taken")})
	assert.ErrorIs(t, err, apperrors.ErrUserConflict)
}

func TestUserService_DeleteCascadesAndInvalidates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, err := f.users.Create(ctx, schema.UserCreate{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	post, err := f.posts.Create(ctx, user.ID, schema.PostCreate{ImageURL: "a.jpg"})
	require.NoError(t, err)
	draft, err := f.drafts.Create(ctx, user.ID, schema.DraftCreate{ImageURL: "b.jpg"})
	require.NoError(t, err)
	_, err = f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)

	deleted, err := f.users.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, f.mr.Exists("user:"+user.ID))

	_, err = f.users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = f.posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	_, err = f.drafts.GetByID(ctx, draft.ID)
	assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)

	deleted, err = f.users.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, err := f.users.Create(ctx, schema.UserCreate{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = f.posts.Create(ctx, user.ID, schema.PostCreate{ImageURL: "a.jpg"})
		require.NoError(t, err)
	}
	_, err = f.drafts.Create(ctx, user.ID, schema.DraftCreate{ImageURL: "b.jpg"})
	require.NoError(t, err)

	profile, err := f.users.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, int64(3), profile.PostsCount)
	assert.Equal(t, int64(1), profile.DraftsCount)

	_, err = f.users.Profile(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_LinkGoogleAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, err := f.users.Create(ctx, schema.UserCreate{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)

	linked, err := f.users.LinkGoogleAccount(ctx, user.ID, "g-9", "https://example.com/a.jpg")
	require.NoError(t, err)
	require.NotNil(t, linked.GoogleID)
	assert.Equal(t, "g-9", *linked.GoogleID)
	assert.Equal(t, "https://example.com/a.jpg", *linked.Image)

	found, err := f.users.GetByGoogleID(ctx, "g-9")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserService_CreateFromIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.users.CreateFromIdentity(ctx, &auth.Identity{
		Subject: "g-7",
		Email:   "g@example.com",
		Name:    "G",
		Picture: "https://example.com/g.jpg",
	})
	require.NoError(t, err)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "g-7", *user.GoogleID)
	assert.Equal(t, "https://example.com/g.jpg", *user.Image)

	bare, err := f.users.CreateFromIdentity(ctx, &auth.Identity{Subject: "g-8", Email: "h@example.com", Name: "H"})
	require.NoError(t, err)
	assert.Nil(t, bare.Image)
}
