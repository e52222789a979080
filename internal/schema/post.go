package schema

import (
	"time"

	"threadai/internal/model"
)

// Pagination bounds for post listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PostCreate is the payload for publishing a post.
type PostCreate struct {
	ImageURL      string   `json:"image_url" validate:"required,max=1024"`
	Title         *string  `json:"title,omitempty" validate:"omitempty,max=255"`
	Description   *string  `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,max=30,dive,required,max=64"`
	IsAIGenerated bool     `json:"is_ai_generated"`
}

// PostUpdate carries a partial post update. A supplied tags list replaces the old one.
type PostUpdate struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty" validate:"omitempty,max=30,dive,required,max=64"`
}

// Apply returns a copy of post with the present fields replaced.
func (u PostUpdate) Apply(post model.Post) model.Post {
	if u.Title != nil {
		post.Title = u.Title
	}
	if u.Description != nil {
		post.Description = u.Description
	}
	if u.Tags != nil {
		post.Tags = append([]string{}, (*u.Tags)...)
	}
	return post
}

// PostListQuery holds the listing query parameters.
type PostListQuery struct {
	Page     int    `query:"page" validate:"min=1"`
	PageSize int    `query:"page_size" validate:"min=1,max=100"`
	UserID   string `query:"user_id"`
}

// Offset returns the number of rows to skip for the requested page.
func (q PostListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PostResponse is a post with its owner's public profile.
type PostResponse struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	User          UserResponse `json:"user"`
	ImageURL      string       `json:"image_url"`
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	Tags          []string     `json:"tags"`
	Likes         int          `json:"likes"`
	Saves         int          `json:"saves"`
	IsAIGenerated bool         `json:"is_ai_generated"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// PostListResponse is one page of posts.
type PostListResponse struct {
	Items    []PostResponse `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int64          `json:"total"`
	HasMore  bool           `json:"has_more"`
}

// NewPostResponse maps a stored post (with its user preloaded) to its public shape.
func NewPostResponse(post *model.Post) PostResponse {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostResponse{
		ID:            post.ID,
		UserID:        post.UserID,
		User:          NewUserResponse(&post.User),
		ImageURL:      post.ImageURL,
		Title:         post.Title,
		Description:   post.Description,
		Tags:          tags,
		Likes:         post.Likes,
		Saves:         post.Saves,
		IsAIGenerated: post.IsAIGenerated,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

// NewPostListResponse builds a page response; has_more is true while rows remain past this page.
func NewPostListResponse(posts []model.Post, query PostListQuery, total int64) PostListResponse {
	items := make([]PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, NewPostResponse(&posts[i]))
	}
	return PostListResponse{
		Items:    items,
		Page:     query.Page,
		PageSize: query.PageSize,
		Total:    total,
		HasMore:  int64(query.Offset()+len(posts)) < total,
	}
}
