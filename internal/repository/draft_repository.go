package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"threadai/internal/model"
)

// DraftRepository defines draft persistence operations.
type DraftRepository interface {
	Create(ctx context.Context, draft *model.Draft) error
	FindByID(ctx context.Context, id string) (*model.Draft, error)
	ListByUser(ctx context.Context, userID string) ([]model.Draft, error)
	Update(ctx context.Context, id string, apply func(model.Draft) model.Draft) (*model.Draft, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository.
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *model.Draft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *draftRepository) FindByID(ctx context.Context, id string) (*model.Draft, error) {
	var draft model.Draft
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// ListByUser returns the owner's drafts, most recently edited first.
func (r *draftRepository) ListByUser(ctx context.Context, userID string) ([]model.Draft, error) {
	drafts := []model.Draft{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("updated_at DESC").Order("id DESC").
		Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

// Update locks the row, applies the patch to a copy and saves it in one transaction.
func (r *draftRepository) Update(ctx context.Context, id string, apply func(model.Draft) model.Draft) (*model.Draft, error) {
	var updated model.Draft
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Draft
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}
		updated = apply(current)
		updated.ID = current.ID
		updated.UserID = current.UserID
		updated.CreatedAt = current.CreatedAt
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *draftRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Draft{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
