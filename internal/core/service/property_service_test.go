package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

type stubPropertyRepo struct {
	properties map[string]*domain.Property
	nextID     int
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{properties: make(map[string]*domain.Property)}
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) error {
	r.nextID++
	p.ID = fmt.Sprintf("prop_%d", r.nextID)
	clone := *p
	r.properties[p.ID] = &clone
	return nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPropertyRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Property, error) {
	out := make([]*domain.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.properties[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPropertyRepo) List(_ context.Context, _ ports.ListPropertiesFilter) ([]*domain.Property, int64, error) {
	out := make([]*domain.Property, 0, len(r.properties))
	for _, p := range r.properties {
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubPropertyRepo) Update(_ context.Context, p *domain.Property) error {
	if _, ok := r.properties[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	clone := *p
	r.properties[p.ID] = &clone
	return nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return nil
}

type stubReviewRepo struct {
	reviews   map[string]*domain.Review // keyed by booking id
	aggregate domain.Rating
	nextID    int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rev *domain.Review) error {
	r.nextID++
	rev.ID = fmt.Sprintf("rev_%d", r.nextID)
	clone := *rev
	r.reviews[rev.BookingID] = &clone
	return nil
}

func (r *stubReviewRepo) FindByBookingID(_ context.Context, bookingID string) (*domain.Review, error) {
	rev, ok := r.reviews[bookingID]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	clone := *rev
	return &clone, nil
}

func (r *stubReviewRepo) ListByProperty(_ context.Context, propertyID string, _, _ int) ([]*domain.Review, int64, error) {
	out := []*domain.Review{}
	for _, rev := range r.reviews {
		if rev.PropertyID == propertyID {
			clone := *rev
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubReviewRepo) Aggregate(_ context.Context, _ string) (domain.Rating, error) {
	return r.aggregate, nil
}

// stubRatingCache records reads and writes so tests can assert read-through
// behaviour.
type stubRatingCache struct {
	entries map[string]domain.Rating
	sets    int
}

func newStubRatingCache() *stubRatingCache {
	return &stubRatingCache{entries: make(map[string]domain.Rating)}
}

func (c *stubRatingCache) Get(_ context.Context, propertyID string) (*domain.Rating, error) {
	rating, ok := c.entries[propertyID]
	if !ok {
		return nil, nil
	}
	return &rating, nil
}

func (c *stubRatingCache) Set(_ context.Context, propertyID string, rating domain.Rating) error {
	c.entries[propertyID] = rating
	c.sets++
	return nil
}

func validPropertyInput() ports.PropertyInput {
	return ports.PropertyInput{
		Title:         "Sunny loft",
		Description:   "Bright loft near the river",
		Location:      ports.LocationInput{Address: "1 Main St", City: "Porto", Country: "PT"},
		PricePerNight: 80,
		Type:          "apartment",
		BedroomCount:  1,
		BathroomCount: 1,
		MaxGuestCount: 2,
	}
}

func newTestPropertyService() (*PropertyService, *stubPropertyRepo, *stubReviewRepo, *stubRatingCache) {
	repo := newStubPropertyRepo()
	reviews := newStubReviewRepo()
	cache := newStubRatingCache()
	svc := NewPropertyService(repo, newStubUserRepo(), reviews, cache, zerolog.Nop())
	return svc, repo, reviews, cache
}

func TestPropertyService_Create_Success(t *testing.T) {
	svc, _, _, _ := newTestPropertyService()

	p, err := svc.Create(context.Background(), "host_1", validPropertyInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if p.HostID != "host_1" {
		t.Fatalf("host id = %q, want host_1", p.HostID)
	}
	if p.Type != domain.TypeApartment {
		t.Fatalf("type = %q", p.Type)
	}
}

func TestPropertyService_Create_Validation(t *testing.T) {
	svc, _, _, _ := newTestPropertyService()

	cases := []struct {
		name   string
		mutate func(*ports.PropertyInput)
	}{
		{"missing title", func(in *ports.PropertyInput) { in.Title = "" }},
		{"unknown type", func(in *ports.PropertyInput) { in.Type = "castle" }},
		{"zero price", func(in *ports.PropertyInput) { in.PricePerNight = 0 }},
		{"zero guests", func(in *ports.PropertyInput) { in.MaxGuestCount = 0 }},
	}

	for _, tc := range cases {
		in := validPropertyInput()
		tc.mutate(&in)
		if _, err := svc.Create(context.Background(), "host_1", in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestPropertyService_Update_OwnerOnly(t *testing.T) {
	svc, _, _, _ := newTestPropertyService()
	p, err := svc.Create(context.Background(), "host_1", validPropertyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validPropertyInput()
	in.Title = "Renamed loft"

	if _, err := svc.Update(context.Background(), p.ID, "host_2", domain.RoleHost, in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other host: expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), p.ID, "host_1", domain.RoleHost, in)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Renamed loft" {
		t.Fatalf("title = %q", updated.Title)
	}

	// Admin may update anyone's listing.
	if _, err := svc.Update(context.Background(), p.ID, "admin_1", domain.RoleAdmin, in); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestPropertyService_Delete_OwnerOnly(t *testing.T) {
	svc, repo, _, _ := newTestPropertyService()
	p, err := svc.Create(context.Background(), "host_1", validPropertyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID, "host_2", domain.RoleHost); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other host: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID, "host_1", domain.RoleHost); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, ok := repo.properties[p.ID]; ok {
		t.Fatalf("property still present after delete")
	}
}

func TestPropertyService_Get_RatingReadThrough(t *testing.T) {
	svc, _, reviews, cache := newTestPropertyService()
	p, err := svc.Create(context.Background(), "host_1", validPropertyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	reviews.aggregate = domain.Rating{Average: 4.5, Count: 2}

	detail, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.Rating.Average != 4.5 || detail.Rating.Count != 2 {
		t.Fatalf("rating = %+v", detail.Rating)
	}
	if cache.sets != 1 {
		t.Fatalf("expected aggregate to be cached, sets = %d", cache.sets)
	}

	// Second read hits the cache, not the aggregation.
	reviews.aggregate = domain.Rating{}
	detail, err = svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.Rating.Average != 4.5 {
		t.Fatalf("expected cached rating, got %+v", detail.Rating)
	}
	if cache.sets != 1 {
		t.Fatalf("cache written again on hit, sets = %d", cache.sets)
	}
}

func TestPropertyService_List_CapsLimit(t *testing.T) {
	svc, _, _, _ := newTestPropertyService()

	result, err := svc.List(context.Background(), ports.ListPropertiesFilter{Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("page = %d, want 1", result.Page)
	}
	if result.Limit != maxPageLimit {
		t.Fatalf("limit = %d, want %d", result.Limit, maxPageLimit)
	}
}
