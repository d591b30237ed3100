package ports

import (
	"context"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// ListPropertiesFilter carries all query parameters for listing properties.
// Zero values mean "no filter"; the service caps Limit at 100.
type ListPropertiesFilter struct {
	City     string
	Type     string
	MinPrice float64
	MaxPrice float64
	Guests   int
	HostID   string // non-empty = scoped to one host's listings
	Page     int    // 1-based
	Limit    int
}

// PropertyRepository defines persistence operations for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Property, error)
	// List returns a page of properties matching filter and the total count.
	List(ctx context.Context, filter ListPropertiesFilter) ([]*domain.Property, int64, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id string) error
}
