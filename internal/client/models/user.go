// Package models defines the data shapes exchanged with the featurevote
// backend. Field names follow the backend's JSON contract.
package models

// User is an account as returned by the backend. CreatedAt is kept as the
// raw string the backend sends.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// RegisterRequest is the JSON body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthToken is the body returned by POST /auth/login.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
