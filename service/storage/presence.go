package storage

import (
	"context"
	"time"

	redissrv "github.com/BlackYHawk/react-food-AI-sub000/service/storage/redis"
	"github.com/redis/go-redis/v9"
)

// Presence keeps lightweight liveness state in Redis: a last-seen timestamp
// per user and a viewer counter per live stream. Counters carry a TTL so an
// abandoned stream decays to zero without a sweeper.
type Presence struct {
	rdb *redis.Client
	ttl time.Duration
}

const (
	lastSeenPrefix   = "pres:lastseen:"
	streamViewPrefix = "stream:viewers:"
)

func NewPresence(rdb *redis.Client, ttl time.Duration) *Presence {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Presence{rdb: rdb, ttl: ttl}
}

// NewDefaultPresence uses the shared Redis client.
func NewDefaultPresence() *Presence {
	return NewPresence(redissrv.GetRedis(), 0)
}

func (p *Presence) TouchLastSeen(ctx context.Context, userID string) error {
	return p.rdb.Set(ctx, lastSeenPrefix+userID, time.Now().Format(time.RFC3339), p.ttl).Err()
}

// LastSeen returns the zero time when the user has no recorded activity.
func (p *Presence) LastSeen(ctx context.Context, userID string) (time.Time, error) {
	v, err := p.rdb.Get(ctx, lastSeenPrefix+userID).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, v)
}

func (p *Presence) ViewerJoin(ctx context.Context, streamID string) (int64, error) {
	key := streamViewPrefix + streamID
	n, err := p.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	_ = p.rdb.Expire(ctx, key, p.ttl).Err()
	return n, nil
}

func (p *Presence) ViewerLeave(ctx context.Context, streamID string) (int64, error) {
	key := streamViewPrefix + streamID
	n, err := p.rdb.Decr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		// decays below zero only on counter expiry races; clamp
		_ = p.rdb.Set(ctx, key, 0, p.ttl).Err()
		n = 0
	}
	return n, nil
}

func (p *Presence) ViewerCount(ctx context.Context, streamID string) (int64, error) {
	n, err := p.rdb.Get(ctx, streamViewPrefix+streamID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// ClearViewers removes the counter when a stream ends.
func (p *Presence) ClearViewers(ctx context.Context, streamID string) error {
	return p.rdb.Del(ctx, streamViewPrefix+streamID).Err()
}
