package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	OpeningBalance decimal.Decimal
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput contains the input for token refresh
type RefreshInput struct {
	RefreshToken string
}

// UserInfo is the user view returned by auth operations
type UserInfo struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

// AuthResult contains the tokens and user view returned after register,
// login, or refresh
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}
