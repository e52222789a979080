package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"threadai/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	Update(ctx context.Context, id string, apply func(model.User) model.User) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountContent(ctx context.Context, id string) (posts int64, drafts int64, err error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return r.findBy(ctx, "google_id", googleID)
}

func (r *userRepository) findBy(ctx context.Context, column, value string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update locks the row, applies the patch to a copy and saves it in one transaction.
func (r *userRepository) Update(ctx context.Context, id string, apply func(model.User) model.User) (*model.User, error) {
	var updated model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}
		updated = apply(current)
		updated.ID = current.ID
		updated.CreatedAt = current.CreatedAt
		return tx.Omit(clause.Associations).Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the user with all of their posts and drafts.
func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Draft{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *userRepository) CountContent(ctx context.Context, id string) (int64, int64, error) {
	var posts, drafts int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Post{}).Where("user_id = ?", id).Count(&posts).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Model(&model.Draft{}).Where("user_id = ?", id).Count(&drafts).Error; err != nil {
		return 0, 0, err
	}
	return posts, drafts, nil
}
