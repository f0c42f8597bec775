// Package cache keeps user records in Redis so id lookups made on every
// task write skip the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"team-collab/internal/models"
	"team-collab/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserStore is the subset of the user repository the cache decorates.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User) error
}

// cachedUser is the Redis payload. It never holds the password hash, so a
// FindByID served from cache returns a user without one. Credential checks
// go through FindByEmail, which is never cached.
type cachedUser struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserCache is a read-through cache in front of a UserStore.
type UserCache struct {
	next UserStore
	rdb  *redis.Client
	ttl  time.Duration
}

var _ UserStore = (*UserCache)(nil)

// NewUserCache wraps next. With a nil client every call goes straight to next.
func NewUserCache(next UserStore, rdb *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &UserCache{next: next, rdb: rdb, ttl: ttl}
}

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (c *UserCache) Create(ctx context.Context, user *models.User) error {
	return c.next.Create(ctx, user)
}

func (c *UserCache) FindByID(ctx context.Context, id int64) (models.User, error) {
	if c.rdb == nil {
		return c.next.FindByID(ctx, id)
	}

	cached, err := c.rdb.Get(ctx, userKey(id)).Bytes()
	switch {
	case err == nil:
		var entry cachedUser
		if err := json.Unmarshal(cached, &entry); err == nil {
			return models.User{
				ID:        entry.ID,
				Name:      entry.Name,
				Email:     entry.Email,
				Role:      entry.Role,
				CreatedAt: entry.CreatedAt,
				UpdatedAt: entry.UpdatedAt,
			}, nil
		}
		logger.ErrorLogger.Error("Error decoding cached user", zap.Int64("user_id", id), zap.Error(err))
	case !errors.Is(err, redis.Nil):
		logger.ErrorLogger.Error("Error reading user cache", zap.Int64("user_id", id), zap.Error(err))
	}

	user, err := c.next.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	c.store(ctx, user)
	return user, nil
}

func (c *UserCache) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return c.next.FindByEmail(ctx, email)
}

func (c *UserCache) List(ctx context.Context) ([]models.User, error) {
	return c.next.List(ctx)
}

// Update writes through and drops the cached entry.
func (c *UserCache) Update(ctx context.Context, user models.User) error {
	if err := c.next.Update(ctx, user); err != nil {
		return err
	}
	c.Invalidate(ctx, user.ID)
	return nil
}

func (c *UserCache) Invalidate(ctx context.Context, id int64) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, userKey(id)).Err(); err != nil {
		logger.ErrorLogger.Error("Error invalidating user cache", zap.Int64("user_id", id), zap.Error(err))
	}
}

func (c *UserCache) store(ctx context.Context, user models.User) {
	payload, err := json.Marshal(cachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	if err != nil {
		logger.ErrorLogger.Error("Error encoding user for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, userKey(user.ID), payload, c.ttl).Err(); err != nil {
		logger.ErrorLogger.Error("Error caching user", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}
