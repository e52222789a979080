package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"threadai/internal/model"
)

// Counter names a post counter that reactions increment.
type Counter string

const (
	CounterLikes Counter = "likes"
	CounterSaves Counter = "saves"
)

// PostRepository defines post persistence operations. Reads preload the owner.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, offset, limit int, userID string) ([]model.Post, int64, error)
	Update(ctx context.Context, id string, apply func(model.Post) model.Post) (*model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	Increment(ctx context.Context, id string, counter Counter) (*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and loads its owner into post.User.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", post.UserID).First(&post.User).Error
	})
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	return findPost(r.db.WithContext(ctx), id)
}

// List returns one page ordered newest first plus the total matching count.
func (r *postRepository) List(ctx context.Context, offset, limit int, userID string) ([]model.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]model.Post, 0, limit)
	if err := query.Preload("User").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update locks the row, applies the patch to a copy and saves the editable
// columns in one transaction.
func (r *postRepository) Update(ctx context.Context, id string, apply func(model.Post) model.Post) (*model.Post, error) {
	var updated *model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}
		next := apply(current)
		next.ID = current.ID
		// Counters only move through Increment.
		if err := tx.Omit(clause.Associations, "user_id", "likes", "saves", "created_at").
			Save(&next).Error; err != nil {
			return err
		}
		var err error
		updated, err = findPost(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Increment adds one to the counter with a single UPDATE so concurrent
// reactions never overwrite each other, then re-reads the post.
func (r *postRepository) Increment(ctx context.Context, id string, counter Counter) (*model.Post, error) {
	if counter != CounterLikes && counter != CounterSaves {
		return nil, fmt.Errorf("unknown counter %q", counter)
	}
	column := string(counter)

	var post *model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).Where("id = ?", id).
			Update(column, gorm.Expr(column+" + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		var err error
		post, err = findPost(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func findPost(db *gorm.DB, id string) (*model.Post, error) {
	var post model.Post
	if err := db.Preload("User").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}
