package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// RatingCache abstracts the cached per-property rating aggregate (Redis).
// Get returns nil on a cache miss.
type RatingCache interface {
	Get(ctx context.Context, propertyID string) (*domain.Rating, error)
	Set(ctx context.Context, propertyID string, rating domain.Rating) error
}

type PropertyService struct {
	repo    ports.PropertyRepository
	users   ports.UserRepository
	reviews ports.ReviewRepository
	ratings RatingCache
	log     zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, users ports.UserRepository, reviews ports.ReviewRepository, ratings RatingCache, log zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, users: users, reviews: reviews, ratings: ratings, log: log}
}

func (s *PropertyService) Create(ctx context.Context, hostID string, in ports.PropertyInput) (*domain.Property, error) {
	if err := validatePropertyInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Property{
		Title:         in.Title,
		Description:   in.Description,
		Location:      toLocation(in.Location),
		PricePerNight: in.PricePerNight,
		Images:        in.Images,
		Amenities:     in.Amenities,
		Type:          domain.PropertyType(in.Type),
		BedroomCount:  in.BedroomCount,
		BathroomCount: in.BathroomCount,
		MaxGuestCount: in.MaxGuestCount,
		HostID:        hostID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error().Err(err).Str("host_id", hostID).Msg("failed to create property")
		return nil, err
	}

	s.log.Info().Str("property_id", p.ID).Str("host_id", hostID).Msg("property created")
	return p, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*ports.PropertyDetail, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.PropertyDetail{Property: p, Rating: s.rating(ctx, p.ID)}

	host, err := s.users.FindByID(ctx, p.HostID)
	if err == nil {
		detail.Host = host
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	return detail, nil
}

func (s *PropertyService) List(ctx context.Context, filter ports.ListPropertiesFilter) (*ports.ListPropertiesResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.PropertySummary, 0, len(items))
	for _, p := range items {
		summaries = append(summaries, ports.PropertySummary{Property: p, Rating: s.rating(ctx, p.ID)})
	}

	return &ports.ListPropertiesResult{
		Items:      summaries,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *PropertyService) Update(ctx context.Context, id, callerID, callerRole string, in ports.PropertyInput) (*domain.Property, error) {
	if err := validatePropertyInput(in); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.HostID != callerID && callerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	p.Title = in.Title
	p.Description = in.Description
	p.Location = toLocation(in.Location)
	p.PricePerNight = in.PricePerNight
	p.Images = in.Images
	p.Amenities = in.Amenities
	p.Type = domain.PropertyType(in.Type)
	p.BedroomCount = in.BedroomCount
	p.BathroomCount = in.BathroomCount
	p.MaxGuestCount = in.MaxGuestCount
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.HostID != callerID && callerRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("property_id", id).Msg("property deleted")
	return nil
}

// rating reads through the cache, recomputing from reviews on a miss. Cache
// failures degrade to the computed value; they never fail the request.
func (s *PropertyService) rating(ctx context.Context, propertyID string) domain.Rating {
	cached, err := s.ratings.Get(ctx, propertyID)
	if err != nil {
		s.log.Warn().Err(err).Str("property_id", propertyID).Msg("rating cache read failed")
	} else if cached != nil {
		return *cached
	}

	rating, err := s.reviews.Aggregate(ctx, propertyID)
	if err != nil {
		s.log.Warn().Err(err).Str("property_id", propertyID).Msg("rating aggregate failed")
		return domain.Rating{}
	}
	if err := s.ratings.Set(ctx, propertyID, rating); err != nil {
		s.log.Warn().Err(err).Str("property_id", propertyID).Msg("rating cache write failed")
	}
	return rating
}

func validatePropertyInput(in ports.PropertyInput) error {
	switch {
	case in.Title == "" || in.Description == "":
		return fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	case !domain.ValidPropertyType(domain.PropertyType(in.Type)):
		return fmt.Errorf("%w: unknown property type %q", domain.ErrValidation, in.Type)
	case in.PricePerNight <= 0:
		return fmt.Errorf("%w: price per night must be positive", domain.ErrValidation)
	case in.MaxGuestCount <= 0:
		return fmt.Errorf("%w: max guest count must be positive", domain.ErrValidation)
	}
	return nil
}

func toLocation(in ports.LocationInput) domain.Location {
	return domain.Location{
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		Country:   in.Country,
		ZipCode:   in.ZipCode,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
