package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates all collection indexes the repositories rely on.
// Index creation is idempotent; call it once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}

	for _, r := range []indexer{
		NewUserRepository(db),
		NewPropertyRepository(db),
		NewBookingRepository(db),
		NewReviewRepository(db),
		NewFavoriteRepository(db),
		NewMessageRepository(db),
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
