// Package rediscache keeps branch records in Redis in front of the
// database-backed branch directory.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL bounds how long a renamed branch code can linger.
const DefaultTTL = 10 * time.Minute

type cachedBranch struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
}

// BranchCache implements ports.BranchDirectory. Redis failures are logged
// and the lookup falls through to next; unknown branches are not cached.
type BranchCache struct {
	client redis.Cmdable
	next   ports.BranchDirectory
	ttl    time.Duration
	logger *zap.Logger
}

func NewBranchCache(client redis.Cmdable, next ports.BranchDirectory, ttl time.Duration, logger *zap.Logger) *BranchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BranchCache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "branch_cache")),
	}
}

// NewClient connects to Redis and checks the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}
	return client, nil
}

func BranchKey(id kernel.UUID) string {
	return fmt.Sprintf("freight:branch:%s", id.String())
}

func (c *BranchCache) Branch(ctx context.Context, id kernel.UUID) (ports.Branch, error) {
	branch, hit, err := c.get(ctx, id)
	if err != nil {
		c.logger.Warn("branch cache read failed", zap.String("branch_id", id.String()), zap.Error(err))
	}
	if hit {
		return branch, nil
	}

	branch, err = c.next.Branch(ctx, id)
	if err != nil {
		return ports.Branch{}, err
	}

	if err = c.set(ctx, branch); err != nil {
		c.logger.Warn("branch cache write failed", zap.String("branch_id", id.String()), zap.Error(err))
	}
	return branch, nil
}

// Invalidate drops the cached entry after a branch changes.
func (c *BranchCache) Invalidate(ctx context.Context, id kernel.UUID) error {
	return errors.Wrap(c.client.Del(ctx, BranchKey(id)).Err(), "failed to delete cached branch")
}

func (c *BranchCache) get(ctx context.Context, id kernel.UUID) (ports.Branch, bool, error) {
	data, err := c.client.Get(ctx, BranchKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Branch{}, false, nil
	}
	if err != nil {
		return ports.Branch{}, false, errors.Wrap(err, "failed to get branch from Redis")
	}

	var cached cachedBranch
	if err = json.Unmarshal(data, &cached); err != nil {
		return ports.Branch{}, false, errors.Wrap(err, "failed to unmarshal cached branch")
	}

	branch, err := cached.toPort()
	if err != nil {
		return ports.Branch{}, false, errors.Wrap(err, "cached branch is corrupt")
	}
	return branch, true, nil
}

func (c *BranchCache) set(ctx context.Context, branch ports.Branch) error {
	data, err := json.Marshal(cachedBranch{
		ID:             branch.ID.String(),
		OrganizationID: branch.OrganizationID.String(),
		Name:           branch.Name,
		Code:           branch.Code,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal branch for caching")
	}
	return errors.Wrap(c.client.Set(ctx, BranchKey(branch.ID), data, c.ttl).Err(), "failed to set branch in Redis")
}

func (b cachedBranch) toPort() (ports.Branch, error) {
	id, err := kernel.UUIDFromString(b.ID)
	if err != nil {
		return ports.Branch{}, err
	}
	org, err := kernel.UUIDFromString(b.OrganizationID)
	if err != nil {
		return ports.Branch{}, err
	}
	return ports.Branch{ID: id, OrganizationID: org, Name: b.Name, Code: b.Code}, nil
}
