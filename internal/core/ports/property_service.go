package ports

import (
	"context"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// LocationInput holds the address fields of a listing payload.
type LocationInput struct {
	Address   string
	City      string
	State     string
	Country   string
	ZipCode   string
	Latitude  float64
	Longitude float64
}

// PropertyInput carries all data needed to create or replace a listing.
type PropertyInput struct {
	Title         string
	Description   string
	Location      LocationInput
	PricePerNight float64
	Images        []string
	Amenities     []string
	Type          string
	BedroomCount  int
	BathroomCount float64
	MaxGuestCount int
}

// PropertyDetail is the full listing view returned by Get.
type PropertyDetail struct {
	Property *domain.Property
	Host     *domain.User // public projection, may be nil when the host is gone
	Rating   domain.Rating
}

// PropertySummary is the lightweight view used in list responses.
type PropertySummary struct {
	Property *domain.Property
	Rating   domain.Rating
}

// ListPropertiesResult is returned by List.
type ListPropertiesResult struct {
	Items      []PropertySummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PropertyService defines use-case operations for listings.
type PropertyService interface {
	Create(ctx context.Context, hostID string, in PropertyInput) (*domain.Property, error)
	Get(ctx context.Context, id string) (*PropertyDetail, error)
	List(ctx context.Context, filter ListPropertiesFilter) (*ListPropertiesResult, error)
	// Update and Delete are restricted to the owning host or an admin.
	Update(ctx context.Context, id, callerID, callerRole string, in PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id, callerID, callerRole string) error
}
