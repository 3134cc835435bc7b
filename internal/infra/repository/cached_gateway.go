package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/validators"
)

const (
	barberIDKeyPrefix    = "barber:id:"
	barberEmailKeyPrefix = "barber:email:"

	// A read that missed before a write may store its stale copy after the
	// write's invalidation. The second delete runs once that read is done.
	staleReadWindow = 500 * time.Millisecond
)

// CachedRepository serves single-barber reads from a cache and drops the
// cached copy on every write that changes a barber document, once right away
// and once more after staleReadWindow. Cache failures are logged and fall
// through to the wrapped repository.
type CachedRepository struct {
	booking.Repository

	cache      Cache
	ttl        time.Duration
	evictDelay time.Duration
	logger     logrus.FieldLogger
}

func NewCachedRepository(
	repo booking.Repository,
	cache Cache,
	ttl time.Duration,
	logger logrus.FieldLogger,
) *CachedRepository {
	return &CachedRepository{
		Repository: repo,
		cache:      cache,
		ttl:        ttl,
		evictDelay: staleReadWindow,
		logger:     logger,
	}
}

func barberKey(lookup booking.BarberLookup) string {
	if lookup.ID != "" {
		return barberIDKeyPrefix + lookup.ID
	}
	return barberEmailKeyPrefix + validators.NormalizeEmail(lookup.Email)
}

func barberKeys(b *models.Barber) []string {
	return []string{
		barberIDKeyPrefix + b.ID.Hex(),
		barberEmailKeyPrefix + b.Email,
	}
}

func (r *CachedRepository) GetBarber(ctx context.Context, lookup booking.BarberLookup) (*models.Barber, error) {
	if lookup.ID == "" && lookup.Email == "" {
		return r.Repository.GetBarber(ctx, lookup)
	}

	key := barberKey(lookup)
	data, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var b models.Barber
		if jsonErr := json.Unmarshal(data, &b); jsonErr == nil {
			return &b, nil
		}
		r.logger.WithField("key", key).Warn("discarding undecodable cached barber")
	case !errors.Is(err, ErrCacheMiss):
		r.logger.WithError(err).WithField("key", key).Warn("barber cache read failed")
	}

	b, err := r.Repository.GetBarber(ctx, lookup)
	if err != nil {
		return nil, err
	}
	r.store(ctx, b)
	return b, nil
}

func (r *CachedRepository) store(ctx context.Context, b *models.Barber) {
	data, err := json.Marshal(b)
	if err != nil {
		r.logger.WithError(err).Warn("encode barber for cache")
		return
	}
	for _, key := range barberKeys(b) {
		if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
			r.logger.WithError(err).WithField("key", key).Warn("barber cache write failed")
		}
	}
}

func (r *CachedRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Del(ctx, keys...); err != nil {
		r.logger.WithError(err).WithField("keys", keys).Warn("barber cache invalidation failed")
	}
}

// evict invalidates keys now and again after evictDelay.
func (r *CachedRepository) evict(ctx context.Context, keys ...string) {
	r.invalidate(ctx, keys...)
	time.AfterFunc(r.evictDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		r.invalidate(ctx, keys...)
	})
}

func (r *CachedRepository) CreateAppointment(ctx context.Context, in booking.NewAppointment) (*models.Appointment, error) {
	ap, err := r.Repository.CreateAppointment(ctx, in)
	// The barber document may have changed even when the append step failed.
	if barber, lookupErr := r.Repository.GetBarber(ctx, booking.BarberLookup{ID: in.BarberID}); lookupErr == nil {
		r.evict(ctx, barberKeys(barber)...)
	} else {
		r.evict(ctx, barberIDKeyPrefix+in.BarberID)
	}
	return ap, err
}

func (r *CachedRepository) UpdateBarber(ctx context.Context, id string, patch booking.BarberPatch) (*models.Barber, error) {
	keys := []string{barberIDKeyPrefix + id}
	if before, err := r.Repository.GetBarber(ctx, booking.BarberLookup{ID: id}); err == nil {
		keys = append(keys, barberEmailKeyPrefix+before.Email)
	}

	b, err := r.Repository.UpdateBarber(ctx, id, patch)
	if b != nil {
		keys = append(keys, barberEmailKeyPrefix+b.Email)
	}
	r.evict(ctx, keys...)
	return b, err
}

var _ booking.Repository = (*CachedRepository)(nil)
