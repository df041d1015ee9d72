// Package cache is a small in-process read-through cache for user
// profiles. Cache failures are never surfaced: a miss or a dropped set
// only costs a database read.
package cache

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/ristretto"

	"github.com/curelink/disha/pkg/model"
)

const defaultTTL = time.Hour

type UserCache struct {
	cache  *ristretto.Cache
	logger *log.Logger
	ttl    time.Duration
}

func NewUserCache(logger *log.Logger) (*UserCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &UserCache{
		cache:  cache,
		logger: logger,
		ttl:    defaultTTL,
	}, nil
}

func (c *UserCache) Get(userID string) (*model.User, bool) {
	value, found := c.cache.Get(userID)
	if !found {
		return nil, false
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil, false
	}
	return user, true
}

// Set stores the user. Ristretto may drop the entry under pressure;
// that is fine, the store remains the source of truth.
func (c *UserCache) Set(user *model.User) {
	if user == nil {
		return
	}
	if !c.cache.SetWithTTL(user.ID, user, 1, c.ttl) {
		c.logger.Debug("User cache set dropped", "user_id", user.ID)
	}
}

func (c *UserCache) Delete(userID string) {
	c.cache.Del(userID)
}

func (c *UserCache) Close() {
	c.cache.Close()
}
