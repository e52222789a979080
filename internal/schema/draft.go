package schema

import (
	"time"

	"threadai/internal/model"
)

// Garment is one garment reference inside a draft or a generation request.
type Garment struct {
	ID         string  `json:"id" validate:"required,max=64"`
	Type       string  `json:"type" validate:"required,oneof=top bottom footwear accessory"`
	ImageURL   string  `json:"image_url" validate:"required,max=1024"`
	ProductURL *string `json:"product_url,omitempty" validate:"omitempty,max=1024"`
	Name       *string `json:"name,omitempty" validate:"omitempty,max=255"`
}

// ToModel converts the garment to its stored form.
func (g Garment) ToModel() model.Garment {
	return model.Garment{
		ID:         g.ID,
		Type:       model.GarmentType(g.Type),
		ImageURL:   g.ImageURL,
		ProductURL: g.ProductURL,
		Name:       g.Name,
	}
}

// GarmentsToModel converts a garment list, never returning nil.
func GarmentsToModel(garments []Garment) []model.Garment {
	out := make([]model.Garment, 0, len(garments))
	for _, g := range garments {
		out = append(out, g.ToModel())
	}
	return out
}

// DraftCreate is the payload for saving a new draft.
type DraftCreate struct {
	ImageURL    string         `json:"image_url" validate:"required,max=1024"`
	Title       *string        `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string        `json:"description,omitempty"`
	Garments    []Garment      `json:"garments" validate:"omitempty,dive"`
	StyleParams map[string]any `json:"style_params" validate:"omitempty,style_params"`
}

// DraftUpdate carries a partial draft update. Supplied garments and
// style_params replace the stored values wholesale.
type DraftUpdate struct {
	ImageURL    *string         `json:"image_url,omitempty" validate:"omitempty,min=1,max=1024"`
	Title       *string         `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string         `json:"description,omitempty"`
	Garments    *[]Garment      `json:"garments,omitempty" validate:"omitempty,dive"`
	StyleParams *map[string]any `json:"style_params,omitempty" validate:"omitempty,style_params"`
}

// Apply returns a copy of draft with the present fields replaced.
func (u DraftUpdate) Apply(draft model.Draft) model.Draft {
	if u.ImageURL != nil {
		draft.ImageURL = *u.ImageURL
	}
	if u.Title != nil {
		draft.Title = u.Title
	}
	if u.Description != nil {
		draft.Description = u.Description
	}
	if u.Garments != nil {
		draft.Garments = GarmentsToModel(*u.Garments)
	}
	if u.StyleParams != nil {
		params := model.StyleParams{}
		for k, v := range *u.StyleParams {
			params[k] = v
		}
		draft.StyleParams = params
	}
	return draft
}

// DraftResponse is a draft as returned to its owner.
type DraftResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	ImageURL    string            `json:"image_url"`
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Garments    []model.Garment   `json:"garments"`
	StyleParams model.StyleParams `json:"style_params"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// DraftListResponse lists every draft of the caller.
type DraftListResponse struct {
	Items []DraftResponse `json:"items"`
	Total int             `json:"total"`
}

// NewDraftResponse maps a stored draft to its response shape.
func NewDraftResponse(draft *model.Draft) DraftResponse {
	garments := draft.Garments
	if garments == nil {
		garments = []model.Garment{}
	}
	params := draft.StyleParams
	if params == nil {
		params = model.StyleParams{}
	}
	return DraftResponse{
		ID:          draft.ID,
		UserID:      draft.UserID,
		ImageURL:    draft.ImageURL,
		Title:       draft.Title,
		Description: draft.Description,
		Garments:    garments,
		StyleParams: params,
		CreatedAt:   draft.CreatedAt,
		UpdatedAt:   draft.UpdatedAt,
	}
}

// NewDraftListResponse maps a list of drafts.
func NewDraftListResponse(drafts []model.Draft) DraftListResponse {
	items := make([]DraftResponse, 0, len(drafts))
	for i := range drafts {
		items = append(items, NewDraftResponse(&drafts[i]))
	}
	return DraftListResponse{Items: items, Total: len(items)}
}
