package ports

import (
	"context"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// FavoriteService defines use-case operations for saved properties.
type FavoriteService interface {
	// Add saves a property for the user. Adding twice is a no-op.
	Add(ctx context.Context, userID, propertyID string) error
	// Remove is idempotent as well.
	Remove(ctx context.Context, userID, propertyID string) error
	List(ctx context.Context, userID string) ([]*domain.Property, error)
}

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	Add(ctx context.Context, f *domain.Favorite) error
	Remove(ctx context.Context, userID, propertyID string) error
	ListPropertyIDs(ctx context.Context, userID string) ([]string, error)
}
