package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"threadai/internal/model"
	"threadai/internal/testutil"
)

func TestDraftRepository_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDraftRepository(db)
	owner := testutil.CreateUser(t, db, "ada@example.com", "Ada")

	draft := &model.Draft{UserID: owner.ID, ImageURL: "x"}
	require.NoError(t, repo.Create(ctx, draft))

	found, err := repo.FindByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.Garments)
	assert.Empty(t, found.Garments)
	assert.NotNil(t, found.StyleParams)
	assert.Empty(t, found.StyleParams)
}

func TestDraftRepository_ListByUserOrdersByUpdatedAt(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDraftRepository(db)
	ada := testutil.CreateUser(t, db, "ada@example.com", "Ada")
	bob := testutil.CreateUser(t, db, "bob@example.com", "Bob")

	older := &model.Draft{UserID: ada.ID, ImageURL: "older"}
	newer := &model.Draft{UserID: ada.ID, ImageURL: "newer"}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, &model.Draft{UserID: bob.ID, ImageURL: "bob"}))

	time.Sleep(5 * time.Millisecond)
	_, err := repo.Update(ctx, older.ID, func(d model.Draft) model.Draft {
		d.Title = testutil.StringPtr("touched")
		return d
	})
	require.NoError(t, err)

	drafts, err := repo.ListByUser(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, older.ID, drafts[0].ID)
	assert.Equal(t, newer.ID, drafts[1].ID)

	none, err := repo.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDraftRepository_UpdateReplacesGarments(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDraftRepository(db)
	owner := testutil.CreateUser(t, db, "ada@example.com", "Ada")

	draft := &model.Draft{
		UserID:   owner.ID,
		ImageURL: "x",
		Garments: []model.Garment{
			{ID: "g1", Type: model.GarmentTop, ImageURL: "top.jpg"},
			{ID: "g2", Type: model.GarmentBottom, ImageURL: "bottom.jpg"},
		},
		StyleParams: model.StyleParams{"fit": "loose"},
	}
	require.NoError(t, repo.Create(ctx, draft))

	_, err := repo.Update(ctx, draft.ID, func(d model.Draft) model.Draft {
		d.Garments = []model.Garment{{ID: "g3", Type: model.GarmentFootwear, ImageURL: "shoe.jpg"}}
		return d
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, draft.ID)
	require.NoError(t, err)
	require.Len(t, found.Garments, 1)
	assert.Equal(t, "g3", found.Garments[0].ID)
	assert.Equal(t, "loose", found.StyleParams["fit"])

	_, err = repo.Update(ctx, "missing", func(d model.Draft) model.Draft { return d })
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err := repo.Delete(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, draft.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
