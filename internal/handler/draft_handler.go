package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "threadai/internal/errors"
	"threadai/internal/model"
	"threadai/internal/schema"
	"threadai/internal/service"
)

// DraftHandler handles the private draft endpoints. Every route requires a bearer token.
type DraftHandler struct {
	draftService service.DraftService
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// ListDrafts godoc
// @Summary List own drafts, most recently updated first
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} schema.DraftListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /drafts [get]
func (h *DraftHandler) ListDrafts(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	drafts, err := h.draftService.ListForUser(c.Request().Context(), claims.UserID())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewDraftListResponse(drafts))
}

// GetDraft godoc
// @Summary Get own draft
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} schema.DraftResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /drafts/{id} [get]
func (h *DraftHandler) GetDraft(c echo.Context) error {
	draft, err := h.ownedDraft(c, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewDraftResponse(draft))
}

// CreateDraft godoc
// @Summary Save a new draft
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draft body schema.DraftCreate true "Draft payload"
// @Success 201 {object} schema.DraftResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /drafts [post]
func (h *DraftHandler) CreateDraft(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var req schema.DraftCreate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	draft, err := h.draftService.Create(c.Request().Context(), claims.UserID(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, schema.NewDraftResponse(draft))
}

// UpdateDraft godoc
// @Summary Update own draft
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param draft body schema.DraftUpdate true "Fields to change"
// @Success 200 {object} schema.DraftResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /drafts/{id} [put]
func (h *DraftHandler) UpdateDraft(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.ownedDraft(c, id); err != nil {
		return respondError(c, err)
	}
	var req schema.DraftUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	draft, err := h.draftService.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.NewDraftResponse(draft))
}

// DeleteDraft godoc
// @Summary Delete own draft
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} schema.MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /drafts/{id} [delete]
func (h *DraftHandler) DeleteDraft(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.ownedDraft(c, id); err != nil {
		return respondError(c, err)
	}
	deleted, err := h.draftService.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return respondError(c, apperrors.ErrDraftNotFound)
	}
	return c.JSON(http.StatusOK, schema.MessageResponse{Message: "Draft deleted successfully"})
}

// ownedDraft loads a draft and checks that the caller owns it.
func (h *DraftHandler) ownedDraft(c echo.Context, id string) (*model.Draft, error) {
	draft, err := h.draftService.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(c, draft.UserID); err != nil {
		return nil, err
	}
	return draft, nil
}
