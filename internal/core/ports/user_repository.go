package ports

import (
	"context"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// ProfilePatch carries the optional profile fields of a partial update.
// Nil pointers leave the stored value untouched. Email, password and role
// are deliberately absent: none of them is writable through the profile
// endpoint.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Bio       *string
	Avatar    *string
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error)
}
