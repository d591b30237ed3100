package domain

import (
	"errors"
	"time"
)

const (
	RoleGuest = "guest"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("token is not valid")
var ErrTokenRevoked = errors.New("token has been revoked")
var ErrValidation = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// IsRegisterableRole reports whether a role may be chosen at signup.
// Admin accounts are seeded out of band and never self-register.
func IsRegisterableRole(role string) bool {
	return role == RoleGuest || role == RoleHost
}

// User models an account in the marketplace. PasswordHash is excluded from
// every JSON projection.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	FirstName    string    `json:"firstName" bson:"first_name"`
	LastName     string    `json:"lastName" bson:"last_name"`
	Role         string    `json:"role" bson:"role"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar       string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}
