// Package cache keeps rendered board snapshots in Redis between ticket mutations.
package cache

import (
	"context"
	"strconv"
	"time"

	"ticketboard/internal/board"
	"ticketboard/internal/model"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type ticketLister interface {
	ListByWorkspace(ctx context.Context, workspaceID uint) ([]model.Ticket, error)
}

// BoardCache serves board snapshots from Redis and rebuilds them from the database on a miss.
// A nil Redis client turns it into a pass-through.
type BoardCache struct {
	base   ticketLister
	redis  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewBoardCache(base ticketLister, client *redis.Client, ttl time.Duration, logger *log.Logger) *BoardCache {
	if base == nil {
		panic("cache.NewBoardCache: base lister is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardCache{base: base, redis: client, ttl: ttl, logger: logger}
}

// Board returns the workspace's board snapshot.
// Snapshots are stored under the workspace's current generation, read before the database is queried.
// An Invalidate that lands while the board is being rebuilt bumps the generation, so the stale rebuild
// is written under a key nobody reads again.
func (c *BoardCache) Board(ctx context.Context, workspaceID uint) (*board.Board, error) {
	gen, cached := c.generation(ctx, workspaceID)
	if cached {
		if b, ok := c.load(ctx, workspaceID, gen); ok {
			return b, nil
		}
	}

	tickets, err := c.base.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	b := board.GroupByStatus(tickets)
	if cached {
		c.store(ctx, workspaceID, gen, b)
	}
	return b, nil
}

// Invalidate moves the workspace to a new generation; the next Board call rebuilds the snapshot.
func (c *BoardCache) Invalidate(ctx context.Context, workspaceID uint) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Incr(ctx, generationKey(workspaceID)).Err(); err != nil {
		c.logger.WithError(err).WithField("workspace_id", workspaceID).Warn("board cache eviction failed")
	}
}

// generation reports the current snapshot generation and whether the cache can be used at all.
func (c *BoardCache) generation(ctx context.Context, workspaceID uint) (int64, bool) {
	if c.redis == nil {
		return 0, false
	}
	gen, err := c.redis.Get(ctx, generationKey(workspaceID)).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		// On redis errors fall back to the database without failing the request.
		c.logger.WithError(err).WithField("workspace_id", workspaceID).Warn("board cache read failed")
		return 0, false
	}
	return gen, true
}

func (c *BoardCache) load(ctx context.Context, workspaceID uint, gen int64) (*board.Board, bool) {
	key := boardCacheKey(workspaceID, gen)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).WithField("workspace_id", workspaceID).Warn("board cache read failed")
		}
		return nil, false
	}
	b := board.New()
	if err := sonic.Unmarshal(data, b); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	for _, s := range model.Statuses {
		if b.Columns[s] == nil {
			b.Columns[s] = []model.Ticket{}
		}
	}
	return b, true
}

func (c *BoardCache) store(ctx context.Context, workspaceID uint, gen int64, b *board.Board) {
	if c.ttl == 0 {
		return
	}
	data, err := sonic.Marshal(b)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, boardCacheKey(workspaceID, gen), data, c.ttl).Err()
}

func generationKey(workspaceID uint) string {
	return "board:" + strconv.FormatUint(uint64(workspaceID), 10) + ":gen"
}

func boardCacheKey(workspaceID uint, gen int64) string {
	return "board:" + strconv.FormatUint(uint64(workspaceID), 10) + ":" + strconv.FormatInt(gen, 10)
}
