package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleCommon = "common"
)

// User models an account that can authenticate against the API.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Registration is the normalized result of validating a register request.
type Registration struct {
	Email    string
	Password string
	Role     string
}

// Credentials is the normalized result of validating a login request.
type Credentials struct {
	Email    string
	Password string
}

// Identity is the principal decoded from a verified token.
type Identity struct {
	ID   string
	Role string
}

// IsValidRole reports whether role is one of the known account roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCommon
}
