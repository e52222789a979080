package service

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"gorm.io/gorm"

	"threadai/internal/cache"
	"threadai/internal/repository"
	"threadai/internal/testutil"
)

type fixture struct {
	db     *gorm.DB
	mr     *miniredis.Miniredis
	cache  *cache.Client
	users  UserService
	posts  PostService
	drafts DraftService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	userRepo := repository.NewUserRepository(db)
	return &fixture{
		db:     db,
		mr:     mr,
		cache:  c,
		users:  NewUserService(userRepo, c),
		posts:  NewPostService(repository.NewPostRepository(db), userRepo),
		drafts: NewDraftService(repository.NewDraftRepository(db), userRepo),
	}
}
