package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "threadai/internal/errors"
	"threadai/internal/model"
	"threadai/internal/repository"
	"threadai/internal/schema"
)

// DraftService exposes draft domain operations.
type DraftService interface {
	ListForUser(ctx context.Context, userID string) ([]model.Draft, error)
	GetByID(ctx context.Context, id string) (*model.Draft, error)
	Create(ctx context.Context, userID string, in schema.DraftCreate) (*model.Draft, error)
	Update(ctx context.Context, id string, in schema.DraftUpdate) (*model.Draft, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type draftService struct {
	drafts repository.DraftRepository
	users  repository.UserRepository
}

// NewDraftService creates a new draft service.
func NewDraftService(drafts repository.DraftRepository, users repository.UserRepository) DraftService {
	return &draftService{drafts: drafts, users: users}
}

func (s *draftService) ListForUser(ctx context.Context, userID string) ([]model.Draft, error) {
	drafts, err := s.drafts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return drafts, nil
}

func (s *draftService) GetByID(ctx context.Context, id string) (*model.Draft, error) {
	draft, err := s.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, draftError("find draft", err)
	}
	return draft, nil
}

func (s *draftService) Create(ctx context.Context, userID string, in schema.DraftCreate) (*model.Draft, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, userLookupError(err)
	}

	params := model.StyleParams{}
	for k, v := range in.StyleParams {
		params[k] = v
	}
	draft := &model.Draft{
		UserID:      userID,
		ImageURL:    in.ImageURL,
		Title:       in.Title,
		Description: in.Description,
		Garments:    schema.GarmentsToModel(in.Garments),
		StyleParams: params,
	}
	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return draft, nil
}

func (s *draftService) Update(ctx context.Context, id string, in schema.DraftUpdate) (*model.Draft, error) {
	draft, err := s.drafts.Update(ctx, id, in.Apply)
	if err != nil {
		return nil, draftError("update draft", err)
	}
	return draft, nil
}

func (s *draftService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.drafts.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete draft: %w", err)
	}
	return deleted, nil
}

func draftError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrDraftNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
