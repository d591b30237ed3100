package handler

import (
	"time"

	"github.com/sharenest/sharenest/internal/core/domain"
)

type locationRequest struct {
	Address   string  `json:"address" validate:"required"`
	City      string  `json:"city"    validate:"required"`
	State     string  `json:"state"   validate:"required"`
	Country   string  `json:"country" validate:"required"`
	ZipCode   string  `json:"zipCode" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type propertyRequest struct {
	Title         string          `json:"title"         validate:"required"`
	Description   string          `json:"description"   validate:"required"`
	Location      locationRequest `json:"location"      validate:"required"`
	PricePerNight float64         `json:"pricePerNight" validate:"required,gt=0"`
	Images        []string        `json:"images"`
	Amenities     []string        `json:"amenities"`
	Type          string          `json:"type"          validate:"required,oneof=house apartment room unique"`
	BedroomCount  int             `json:"bedroomCount"  validate:"required,gt=0"`
	BathroomCount float64         `json:"bathroomCount" validate:"required,gt=0"`
	MaxGuestCount int             `json:"maxGuestCount" validate:"required,gt=0"`
}

// hostResponse is the public projection of a property's host.
type hostResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

type ratingResponse struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type propertyResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      domain.Location `json:"location"`
	PricePerNight float64         `json:"pricePerNight"`
	Images        []string        `json:"images"`
	Amenities     []string        `json:"amenities"`
	Type          string          `json:"type"`
	BedroomCount  int             `json:"bedroomCount"`
	BathroomCount float64         `json:"bathroomCount"`
	MaxGuestCount int             `json:"maxGuestCount"`
	HostID        string          `json:"hostId"`
	Host          *hostResponse   `json:"host,omitempty"`
	Rating        *ratingResponse `json:"rating,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listPropertiesResponse struct {
	Data       []propertyResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
