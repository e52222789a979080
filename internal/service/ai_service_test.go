package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"threadai/internal/ai"
	apperrors "threadai/internal/errors"
	"threadai/internal/schema"
)

// MockGenerator is a mock implementation of ai.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req ai.Request) (*ai.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.Result), args.Error(1)
}

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestAIService_GenerateOutfitPlaceholder(t *testing.T) {
	svc := NewAIService(ai.NewPlaceholderGenerator(5*time.Millisecond), 1024)
	now := time.Now()

	res, err := svc.GenerateOutfit(context.Background(), schema.GenerateRequest{
		UserImage: "me.jpg",
		Garments:  []schema.Garment{},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, ai.PlaceholderImageURL, res.ImageURL)
	assert.True(t, strings.HasPrefix(res.ID, "gen-"))
	assert.GreaterOrEqual(t, res.ProcessingTime, 0.005)
	require.NotNil(t, res.Message)
	unix, err := strconv.ParseInt(strings.TrimPrefix(res.ID, "gen-"), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, unix, now.Unix())
}

func TestAIService_GenerateOutfitProcessingTimeIsPositive(t *testing.T) {
	svc := NewAIService(ai.NewPlaceholderGenerator(0), 1024).(*aiService)
	frozen := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	res, err := svc.GenerateOutfit(context.Background(), schema.GenerateRequest{
		UserImage: "me.jpg",
		Garments:  []schema.Garment{},
	})
	require.NoError(t, err)
	assert.Greater(t, res.ProcessingTime, 0.0)
	assert.Equal(t, "gen-"+strconv.FormatInt(frozen.Unix(), 10), res.ID)
}

func TestAIService_GenerateOutfitForwardsRequest(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req ai.Request) bool {
		return req.UserImage == "me.jpg" &&
			len(req.Garments) == 1 &&
			req.StyleParams["fit"] == "tight" &&
			req.StyleParams["style"] == ""
	})).Return(&ai.Result{ImageURL: "out.jpg", ID: "job-1"}, nil)
	svc := NewAIService(gen, 1024)

	fit := "tight"
	res, err := svc.GenerateOutfit(context.Background(), schema.GenerateRequest{
		UserImage:   "me.jpg",
		Garments:    []schema.Garment{{ID: "g1", Type: "top", ImageURL: "top.jpg"}},
		StyleParams: &schema.StyleParams{Fit: &fit},
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", res.ID)
	assert.Equal(t, "out.jpg", res.ImageURL)
	gen.AssertExpectations(t)
}

func TestAIService_GenerateOutfitFailure(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("upstream 503"))
	svc := NewAIService(gen, 1024)

	_, err := svc.GenerateOutfit(context.Background(), schema.GenerateRequest{UserImage: "me.jpg"})
	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
}

func TestAIService_ValidateImage(t *testing.T) {
	svc := NewAIService(ai.NewPlaceholderGenerator(0), 64)
	png := base64.StdEncoding.EncodeToString(pngHeader)
	oversized := base64.StdEncoding.EncodeToString(append(append([]byte{}, pngHeader...), make([]byte, 64)...))

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "empty", input: "", valid: false},
		{name: "blank", input: "   ", valid: false},
		{name: "https url", input: "https://cdn.example.com/me.jpg", valid: true},
		{name: "http url", input: "http://cdn.example.com/me.jpg", valid: true},
		{name: "url without host", input: "https://", valid: false},
		{name: "raw base64 png", input: png, valid: true},
		{name: "data url png", input: "data:image/png;base64," + png, valid: true},
		{name: "data url not base64", input: "data:text/plain,hello", valid: false},
		{name: "not base64", input: "%%%not-base64%%%", valid: false},
		{name: "base64 text", input: base64.StdEncoding.EncodeToString([]byte("just some text")), valid: false},
		{name: "oversized", input: oversized, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateImage(context.Background(), tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrInvalidImage)
			}
		})
	}
}
