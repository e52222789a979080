package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "threadai/internal/errors"
	"threadai/internal/metrics"
	"threadai/internal/model"
	"threadai/internal/repository"
	"threadai/internal/schema"
)

// PostService exposes post domain operations.
type PostService interface {
	List(ctx context.Context, offset, limit int, userID string) ([]model.Post, int64, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Create(ctx context.Context, userID string, in schema.PostCreate) (*model.Post, error)
	Update(ctx context.Context, id string, in schema.PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	Like(ctx context.Context, id string) (*model.Post, error)
	Save(ctx context.Context, id string) (*model.Post, error)
}

type postService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, users repository.UserRepository) PostService {
	return &postService{posts: posts, users: users}
}

func (s *postService) List(ctx context.Context, offset, limit int, userID string) ([]model.Post, int64, error) {
	posts, total, err := s.posts.List(ctx, offset, limit, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

func (s *postService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, postError("find post", err)
	}
	return post, nil
}

// Create publishes a post for an existing user with zeroed counters.
func (s *postService) Create(ctx context.Context, userID string, in schema.PostCreate) (*model.Post, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, userLookupError(err)
	}

	tags := append([]string{}, in.Tags...)
	post := &model.Post{
		UserID:        userID,
		ImageURL:      in.ImageURL,
		Title:         in.Title,
		Description:   in.Description,
		Tags:          tags,
		IsAIGenerated: in.IsAIGenerated,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id string, in schema.PostUpdate) (*model.Post, error) {
	post, err := s.posts.Update(ctx, id, in.Apply)
	if err != nil {
		return nil, postError("update post", err)
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.posts.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return deleted, nil
}

// Like adds one like. Repeat calls keep counting.
func (s *postService) Like(ctx context.Context, id string) (*model.Post, error) {
	return s.react(ctx, id, repository.CounterLikes)
}

// Save adds one save. Repeat calls keep counting.
func (s *postService) Save(ctx context.Context, id string) (*model.Post, error) {
	return s.react(ctx, id, repository.CounterSaves)
}

func (s *postService) react(ctx context.Context, id string, counter repository.Counter) (*model.Post, error) {
	post, err := s.posts.Increment(ctx, id, counter)
	if err != nil {
		return nil, postError("increment "+string(counter), err)
	}
	metrics.PostReactions.WithLabelValues(string(counter)).Inc()
	return post, nil
}

func postError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrPostNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
