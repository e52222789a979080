package schema

// StyleParams tunes a generation request.
type StyleParams struct {
	Style    *string `json:"style,omitempty" validate:"omitempty,max=64"`
	Fit      *string `json:"fit,omitempty" validate:"omitempty,oneof=loose regular tight"`
	Occasion *string `json:"occasion,omitempty" validate:"omitempty,max=64"`
}

// GenerateRequest asks for an outfit image of the user wearing the garments.
type GenerateRequest struct {
	UserImage   string       `json:"user_image" validate:"required"`
	Garments    []Garment    `json:"garments" validate:"required,dive"`
	StyleParams *StyleParams `json:"style_params,omitempty"`
}

// GenerateResponse describes a finished generation.
type GenerateResponse struct {
	ImageURL       string  `json:"image_url"`
	ID             string  `json:"id"`
	ProcessingTime float64 `json:"processing_time"`
	Success        bool    `json:"success"`
	Message        *string `json:"message"`
}

// ValidateImageRequest carries an image as a URL, a data URL or raw base64.
type ValidateImageRequest struct {
	ImageData string `json:"image_data" query:"image_data"`
}

// ValidateImageResponse is returned for an acceptable image.
type ValidateImageResponse struct {
	Valid bool `json:"valid"`
}
