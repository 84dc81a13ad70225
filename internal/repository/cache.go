package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"document-workers/internal/common/logger"
	"document-workers/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "document-workers:application:"

// CachedStore is a read-through Redis cache in front of another store. Redis
// failures are logged and the underlying store is used instead. Absent
// applications and errors are never cached.
type CachedStore struct {
	next   ApplicationFinder
	client redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(next ApplicationFinder, client redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "application-cache"}),
	}
}

func cacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

func (s *CachedStore) FindApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	key := cacheKey(id)

	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var app models.Application
		jsonErr := json.Unmarshal(raw, &app)
		if jsonErr == nil {
			return &app, nil
		}
		s.logger.Warn("discarding unreadable cache entry", map[string]interface{}{
			"applicationId": id.String(),
			"error":         jsonErr,
		})
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("application cache read failed", map[string]interface{}{
			"applicationId": id.String(),
			"error":         err,
		})
	}

	app, err := s.next.FindApplicationByID(ctx, id)
	if err != nil || app == nil {
		return app, err
	}

	payload, err := json.Marshal(app)
	if err != nil {
		return app, nil
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn("application cache write failed", map[string]interface{}{
			"applicationId": id.String(),
			"error":         err,
		})
	}
	return app, nil
}

// Invalidate drops the cached copy of an application.
func (s *CachedStore) Invalidate(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, cacheKey(id)).Err()
}
