package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "threadai/internal/errors"
	"threadai/internal/schema"
	"threadai/internal/service"
)

// UserHandler bundles the user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body schema.UserCreate true "User payload"
// @Success 201 {object} schema.UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req schema.UserCreate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, schema.NewUserResponse(user))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} schema.UserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewUserResponse(user))
}

// GetProfile godoc
// @Summary Get user profile with content counts
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} schema.UserProfile
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.svc.Profile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetUserByUsername godoc
// @Summary Get user by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} schema.UserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/username/{username} [get]
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	user, err := h.svc.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewUserResponse(user))
}

// UpdateUser godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body schema.UserUpdate true "Fields to change"
// @Success 200 {object} schema.UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id := c.Param("id")
	if _, err := requireOwner(c, id); err != nil {
		return respondError(c, err)
	}
	var req schema.UserUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewUserResponse(user))
}

// DeleteUser godoc
// @Summary Delete own account with all posts and drafts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} schema.MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if _, err := requireOwner(c, id); err != nil {
		return respondError(c, err)
	}
	deleted, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return respondError(c, apperrors.ErrUserNotFound)
	}
	return c.JSON(http.StatusOK, schema.MessageResponse{Message: "User deleted successfully"})
}
