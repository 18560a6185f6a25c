package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	appointmenterrors "clinicbook/internal/appointments/errors"
	"clinicbook/pkg/config"
	"clinicbook/pkg/model"
)

const LockCollectionName = "AppointmentLocks"

// SlotLockKey builds the lock document _id for one bookable slot.
func SlotLockKey(locationID, date, start string) string {
	return fmt.Sprintf("%s|%s|%s", locationID, date, start)
}

// LockRepository takes short-lived advisory locks on slot coordinates while
// a booking is written. A unique insert on the slot key is the lock; a TTL
// index on expires_at reaps locks left behind by crashed writers.
type LockRepository interface {
	Acquire(ctx context.Context, key string) error
	Release(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type mongoLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLockRepository(cfg *config.Config) LockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoLockRepository) Acquire(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock := model.AppointmentLock{
		ID:        key,
		ExpiresAt: time.Now().UTC().Add(r.cfg.LockTTL),
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", appointmenterrors.ErrSlotLocked, key)
		}
		return fmt.Errorf("failed to acquire slot lock: %w", err)
	}

	return nil
}

func (r *mongoLockRepository) Release(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to release slot lock: %w", err)
	}
	return nil
}

// DeleteExpired removes locks past their expiry. The TTL index does this
// eventually; the sweeper calls it so locks do not linger for the minute or
// so the TTL monitor can lag.
func (r *mongoLockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now().UTC()},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired locks: %w", err)
	}

	return result.DeletedCount, nil
}
