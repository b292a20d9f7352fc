package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Nickname    string `json:"nickname,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

// LoginRequest is the request body for username/password login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the request body for rotating an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserResponse represents the authenticated user's profile
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Nickname    string `json:"nickname,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Role        string `json:"role"`
}
