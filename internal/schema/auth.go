package schema

import "threadai/internal/model"

// GoogleAuthRequest carries the Google ID token obtained by the frontend.
type GoogleAuthRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthUser is the subset of the user returned alongside a token.
type AuthUser struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// GoogleAuthResponse is returned after a successful Google sign-in.
type GoogleAuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        AuthUser `json:"user"`
}

// NewGoogleAuthResponse builds the sign-in response for a bearer token.
func NewGoogleAuthResponse(token string, user *model.User) GoogleAuthResponse {
	return GoogleAuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Image: user.Image,
		},
	}
}
