package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

type FavoriteService struct {
	repo       ports.FavoriteRepository
	properties ports.PropertyRepository
	log        zerolog.Logger
}

func NewFavoriteService(repo ports.FavoriteRepository, properties ports.PropertyRepository, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{repo: repo, properties: properties, log: log}
}

func (s *FavoriteService) Add(ctx context.Context, userID, propertyID string) error {
	// Verify the property exists so a favorite can never dangle.
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return err
	}

	return s.repo.Add(ctx, &domain.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *FavoriteService) Remove(ctx context.Context, userID, propertyID string) error {
	return s.repo.Remove(ctx, userID, propertyID)
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]*domain.Property, error) {
	ids, err := s.repo.ListPropertyIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Property{}, nil
	}
	return s.properties.FindByIDs(ctx, ids)
}
