package domain

import (
	"errors"
	"time"
)

// PropertyType enumerates the listing categories.
type PropertyType string

const (
	TypeHouse     PropertyType = "house"
	TypeApartment PropertyType = "apartment"
	TypeRoom      PropertyType = "room"
	TypeUnique    PropertyType = "unique"
)

var ErrPropertyNotFound = errors.New("property not found")

// ValidPropertyType reports whether t is one of the known listing categories.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case TypeHouse, TypeApartment, TypeRoom, TypeUnique:
		return true
	}
	return false
}

// Location is the physical address of a listing.
type Location struct {
	Address   string  `json:"address" bson:"address"`
	City      string  `json:"city" bson:"city"`
	State     string  `json:"state" bson:"state"`
	Country   string  `json:"country" bson:"country"`
	ZipCode   string  `json:"zipCode" bson:"zip_code"`
	Latitude  float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

// Rating is the aggregated review score of a property.
type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int64   `json:"count" bson:"count"`
}

// Property is the listing aggregate root.
type Property struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	Title         string       `json:"title" bson:"title"`
	Description   string       `json:"description" bson:"description"`
	Location      Location     `json:"location" bson:"location"`
	PricePerNight float64      `json:"pricePerNight" bson:"price_per_night"`
	Images        []string     `json:"images" bson:"images"`
	Amenities     []string     `json:"amenities" bson:"amenities"`
	Type          PropertyType `json:"type" bson:"type"`
	BedroomCount  int          `json:"bedroomCount" bson:"bedroom_count"`
	BathroomCount float64      `json:"bathroomCount" bson:"bathroom_count"`
	MaxGuestCount int          `json:"maxGuestCount" bson:"max_guest_count"`
	HostID        string       `json:"hostId" bson:"host_id"`
	CreatedAt     time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" bson:"updated_at"`
}
