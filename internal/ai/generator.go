// Package ai holds the outfit generators the AI service delegates to.
package ai

import (
	"context"
	"time"

	"threadai/internal/model"
)

// PlaceholderImageURL is returned by the placeholder generator.
const PlaceholderImageURL = "https://placeholder.example.com/generated-outfit.jpg"

// Request is one outfit generation request.
type Request struct {
	UserImage   string            `json:"user_image"`
	Garments    []model.Garment   `json:"garments"`
	StyleParams map[string]string `json:"style_params,omitempty"`
}

// Result is a generated outfit image. ID may be empty when the generator
// does not assign one.
type Result struct {
	ImageURL string `json:"image_url"`
	ID       string `json:"id"`
}

// Generator renders the user wearing the requested garments.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// PlaceholderGenerator simulates generation latency and returns a fixed image.
type PlaceholderGenerator struct {
	delay time.Duration
}

// NewPlaceholderGenerator creates a generator that waits delay before answering.
func NewPlaceholderGenerator(delay time.Duration) *PlaceholderGenerator {
	return &PlaceholderGenerator{delay: delay}
}

// Generate waits for the configured delay or until ctx is done.
func (g *PlaceholderGenerator) Generate(ctx context.Context, _ Request) (*Result, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return &Result{ImageURL: PlaceholderImageURL}, nil
}
