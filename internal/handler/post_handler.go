package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "threadai/internal/errors"
	"threadai/internal/schema"
	"threadai/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPosts godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param page_size query int false "Page size" default(20) minimum(1) maximum(100)
// @Param user_id query string false "Only posts of this user"
// @Success 200 {object} schema.PostListResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	query := schema.PostListQuery{Page: 1, PageSize: schema.DefaultPageSize}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
			Detail: "Validation failed",
			Errors: map[string]string{"query": "integer"},
		})
	}
	if err := validate(c, &query); err != nil {
		return err
	}

	posts, total, err := h.postService.List(c.Request().Context(), query.Offset(), query.PageSize, query.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewPostListResponse(posts, query, total))
}

// GetPost godoc
// @Summary Get post by id
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} schema.PostResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewPostResponse(post))
}

// CreatePost godoc
// @Summary Publish a post as the current user
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body schema.PostCreate true "Post payload"
// @Success 201 {object} schema.PostResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var req schema.PostCreate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.postService.Create(c.Request().Context(), claims.UserID(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, schema.NewPostResponse(post))
}

// UpdatePost godoc
// @Summary Update own post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param post body schema.PostUpdate true "Fields to change"
// @Success 200 {object} schema.PostResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id := c.Param("id")
	if err := h.authorize(c, id); err != nil {
		return respondError(c, err)
	}
	var req schema.PostUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.postService.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewPostResponse(post))
}

// DeletePost godoc
// @Summary Delete own post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} schema.MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	id := c.Param("id")
	if err := h.authorize(c, id); err != nil {
		return respondError(c, err)
	}
	deleted, err := h.postService.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return respondError(c, apperrors.ErrPostNotFound)
	}
	return c.JSON(http.StatusOK, schema.MessageResponse{Message: "Post deleted successfully"})
}

// LikePost godoc
// @Summary Like a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} schema.PostResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/like [post]
func (h *PostHandler) LikePost(c echo.Context) error {
	post, err := h.postService.Like(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewPostResponse(post))
}

// SavePost godoc
// @Summary Save a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} schema.PostResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/save [post]
func (h *PostHandler) SavePost(c echo.Context) error {
	post, err := h.postService.Save(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewPostResponse(post))
}

// authorize loads the post so a missing post is a 404 before ownership is checked.
func (h *PostHandler) authorize(c echo.Context, id string) error {
	post, err := h.postService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	_, err = requireOwner(c, post.UserID)
	return err
}
