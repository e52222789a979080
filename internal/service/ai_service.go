package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"threadai/internal/ai"
	apperrors "threadai/internal/errors"
	"threadai/internal/metrics"
	"threadai/internal/schema"
)

const (
	generationMessage = "Outfit generated successfully"
	minProcessingTime = time.Microsecond
)

// AIService exposes outfit generation and upload validation.
type AIService interface {
	GenerateOutfit(ctx context.Context, in schema.GenerateRequest) (*schema.GenerateResponse, error)
	ValidateImage(ctx context.Context, imageData string) error
}

type aiService struct {
	generator   ai.Generator
	maxFileSize int64
	now         func() time.Time
}

// NewAIService creates an AI service. Inline images larger than maxFileSize are rejected.
func NewAIService(generator ai.Generator, maxFileSize int64) AIService {
	return &aiService{generator: generator, maxFileSize: maxFileSize, now: time.Now}
}

func (s *aiService) GenerateOutfit(ctx context.Context, in schema.GenerateRequest) (*schema.GenerateResponse, error) {
	req := ai.Request{
		UserImage: in.UserImage,
		Garments:  schema.GarmentsToModel(in.Garments),
	}
	if p := in.StyleParams; p != nil {
		req.StyleParams = map[string]string{}
		for key, value := range map[string]*string{"style": p.Style, "fit": p.Fit, "occasion": p.Occasion} {
			if value != nil {
				req.StyleParams[key] = *value
			}
		}
	}

	start := s.now()
	result, err := s.generator.Generate(ctx, req)
	metrics.ObserveGeneration(start, err)
	if err != nil {
		slog.ErrorContext(ctx, "outfit generation failed", "error", err, "garments", len(req.Garments))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGenerationFailed, err)
	}
	finished := s.now()

	id := result.ID
	if id == "" {
		id = fmt.Sprintf("gen-%d", finished.Unix())
	}
	message := generationMessage
	return &schema.GenerateResponse{
		ImageURL:       result.ImageURL,
		ID:             id,
		ProcessingTime: processingTime(start, finished),
		Success:        true,
		Message:        &message,
	}, nil
}

// ValidateImage accepts http(s) URLs, and data URLs or raw base64 that decode
// to an image no larger than the configured limit.
func (s *aiService) ValidateImage(_ context.Context, imageData string) error {
	data := strings.TrimSpace(imageData)
	if data == "" {
		return apperrors.ErrInvalidImage
	}

	if strings.HasPrefix(data, "http://") || strings.HasPrefix(data, "https://") {
		u, err := url.Parse(data)
		if err != nil || u.Host == "" {
			return apperrors.ErrInvalidImage
		}
		return nil
	}

	payload := data
	if strings.HasPrefix(data, "data:") {
		meta, encoded, ok := strings.Cut(data[len("data:"):], ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return apperrors.ErrInvalidImage
		}
		payload = encoded
	}

	if int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxFileSize+2 {
		return apperrors.ErrInvalidImage
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 || int64(len(raw)) > s.maxFileSize {
		return apperrors.ErrInvalidImage
	}
	if !strings.HasPrefix(http.DetectContentType(raw), "image/") {
		return apperrors.ErrInvalidImage
	}
	return nil
}

// processingTime reports at least a microsecond so coarse clocks never yield 0.
func processingTime(start, finished time.Time) float64 {
	if elapsed := finished.Sub(start); elapsed > minProcessingTime {
		return elapsed.Seconds()
	}
	return minProcessingTime.Seconds()
}
