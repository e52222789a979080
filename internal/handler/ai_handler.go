package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "threadai/internal/errors"
	"threadai/internal/schema"
	"threadai/internal/service"
)

// AIHandler handles outfit generation endpoints.
type AIHandler struct {
	aiService service.AIService
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(aiService service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// Generate godoc
// @Summary Generate an outfit image
// @Tags ai
// @Accept json
// @Produce json
// @Param request body schema.GenerateRequest true "User image and garments"
// @Success 200 {object} schema.GenerateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /ai/generate [post]
func (h *AIHandler) Generate(c echo.Context) error {
	var req schema.GenerateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.aiService.GenerateOutfit(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ValidateImage godoc
// @Summary Validate an image before upload
// @Description Accepts an http(s) URL, a data URL or raw base64 in the body or the image_data query parameter.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body schema.ValidateImageRequest false "Image data"
// @Param image_data query string false "Image data"
// @Success 200 {object} schema.ValidateImageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /ai/validate-image [post]
func (h *AIHandler) ValidateImage(c echo.Context) error {
	var req schema.ValidateImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Detail: "Invalid request body"})
	}
	if req.ImageData == "" {
		req.ImageData = c.QueryParam("image_data")
	}
	if err := h.aiService.ValidateImage(c.Request().Context(), req.ImageData); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, schema.ValidateImageResponse{Valid: true})
}
