package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"threadai/internal/auth"
	"threadai/internal/cache"
	apperrors "threadai/internal/errors"
	"threadai/internal/model"
	"threadai/internal/repository"
	"threadai/internal/schema"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user domain operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	Create(ctx context.Context, in schema.UserCreate) (*model.User, error)
	CreateFromIdentity(ctx context.Context, identity *auth.Identity) (*model.User, error)
	Update(ctx context.Context, id string, in schema.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Profile(ctx context.Context, id string) (*schema.UserProfile, error)
	LinkGoogleAccount(ctx context.Context, id, googleID, picture string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, cache.UserKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}

	if err := s.cache.SetJSON(ctx, cache.UserKey(id), user, userCacheTTL); err != nil {
		slog.WarnContext(ctx, "cache user", "user_id", id, "error", err)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

func (s *userService) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	user, err := s.repo.FindByGoogleID(ctx, googleID)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, in schema.UserCreate) (*model.User, error) {
	return s.create(ctx, &model.User{
		Email:    in.Email,
		Name:     in.Name,
		Username: in.Username,
		Bio:      in.Bio,
		Image:    in.Image,
	})
}

// CreateFromIdentity creates the user for a verified provider identity,
// bound to its subject.
func (s *userService) CreateFromIdentity(ctx context.Context, identity *auth.Identity) (*model.User, error) {
	subject := identity.Subject
	user := &model.User{
		Email:    identity.Email,
		Name:     identity.Name,
		GoogleID: &subject,
	}
	if identity.Picture != "" {
		picture := identity.Picture
		user.Image = &picture
	}
	return s.create(ctx, user)
}

func (s *userService) create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, in schema.UserUpdate) (*model.User, error) {
	user, err := s.repo.Update(ctx, id, in.Apply)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrUserNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrUserConflict
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.cache.Delete(ctx, cache.UserKey(id))
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	s.cache.Delete(ctx, cache.UserKey(id))
	return deleted, nil
}

func (s *userService) Profile(ctx context.Context, id string) (*schema.UserProfile, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, drafts, err := s.repo.CountContent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count user content: %w", err)
	}
	return &schema.UserProfile{
		UserResponse: schema.NewUserResponse(user),
		PostsCount:   posts,
		DraftsCount:  drafts,
	}, nil
}

// LinkGoogleAccount attaches a Google subject to an existing user found by
// email. The picture only fills an empty avatar.
func (s *userService) LinkGoogleAccount(ctx context.Context, id, googleID, picture string) (*model.User, error) {
	user, err := s.repo.Update(ctx, id, func(u model.User) model.User {
		u.GoogleID = &googleID
		if u.Image == nil && picture != "" {
			u.Image = &picture
		}
		return u
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrUserNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrUserConflict
		}
		return nil, fmt.Errorf("link google account: %w", err)
	}
	s.cache.Delete(ctx, cache.UserKey(id))
	return user, nil
}

func userLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return fmt.Errorf("find user: %w", err)
}
