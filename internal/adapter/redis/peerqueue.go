package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

const (
	peerQueueKey     = "peer:queue"
	peerInterestsKey = "peer:interests"
)

// matchScript pairs the caller with the oldest other waiter, or enqueues the
// caller. Waiters older than the cutoff are dropped first, then the caller's
// interests are stored. Running it as one
// script makes pairing atomic across concurrent joins.
var matchScript = goredis.NewScript(`
local queue = KEYS[1]
local interests = KEYS[2]
local caller = ARGV[1]
local now = tonumber(ARGV[2])
local cutoff = tonumber(ARGV[3])
local callerInterests = ARGV[4]

local stale = redis.call('ZRANGEBYSCORE', queue, '-inf', cutoff)
for _, uid in ipairs(stale) do
	redis.call('HDEL', interests, uid)
end
redis.call('ZREMRANGEBYSCORE', queue, '-inf', cutoff)
redis.call('HSET', interests, caller, callerInterests)

local waiting = redis.call('ZRANGE', queue, 0, -1)
for _, uid in ipairs(waiting) do
	if uid ~= caller then
		redis.call('ZREM', queue, uid, caller)
		return uid
	end
end

redis.call('ZADD', queue, 'NX', now, caller)
return false
`)

// PeerQueue is the matchmaking waiting room.
type PeerQueue struct {
	rdb goredis.UniversalClient
	ttl time.Duration
	now func() time.Time
}

// NewPeerQueue creates a PeerQueue. Waiters idle for longer than ttl are dropped.
func NewPeerQueue(rdb goredis.UniversalClient, ttl time.Duration) *PeerQueue {
	return &PeerQueue{rdb: rdb, ttl: ttl, now: time.Now}
}

// Join enqueues userID or pairs it with a waiting user. ok is false when the
// caller was left waiting.
func (q *PeerQueue) Join(ctx context.Context, userID string, interests []string) (domain.PeerPair, bool, error) {
	b, err := json.Marshal(interests)
	if err != nil {
		return domain.PeerPair{}, false, fmt.Errorf("redis.Join: %w", err)
	}

	now := q.now()
	cutoff := now.Add(-q.ttl)
	peerID, err := matchScript.Run(ctx, q.rdb,
		[]string{peerQueueKey, peerInterestsKey},
		userID, now.UnixMilli(), cutoff.UnixMilli(), b,
	).Text()
	if errors.Is(err, goredis.Nil) {
		return domain.PeerPair{}, false, nil
	}
	if err != nil {
		return domain.PeerPair{}, false, fmt.Errorf("redis.Join: match: %w", err)
	}

	vals, err := q.rdb.HMGet(ctx, peerInterestsKey, userID, peerID).Result()
	if err != nil {
		return domain.PeerPair{}, false, fmt.Errorf("redis.Join: load interests: %w", err)
	}
	if err := q.rdb.HDel(ctx, peerInterestsKey, userID, peerID).Err(); err != nil {
		return domain.PeerPair{}, false, fmt.Errorf("redis.Join: clear interests: %w", err)
	}

	return domain.PeerPair{
		PeerID:          peerID,
		SharedInterests: intersect(decodeInterests(vals[0]), decodeInterests(vals[1])),
	}, true, nil
}

// Leave removes userID from the queue. Leaving twice is not an error.
func (q *PeerQueue) Leave(ctx context.Context, userID string) error {
	pipe := q.rdb.TxPipeline()
	pipe.ZRem(ctx, peerQueueKey, userID)
	pipe.HDel(ctx, peerInterestsKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis.Leave: %w", err)
	}
	return nil
}

// IsWaiting reports whether userID is still queued.
func (q *PeerQueue) IsWaiting(ctx context.Context, userID string) (bool, error) {
	_, err := q.rdb.ZScore(ctx, peerQueueKey, userID).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis.IsWaiting: %w", err)
	}
	return true, nil
}

func decodeInterests(v any) []string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	var out []string
	if json.Unmarshal([]byte(s), &out) != nil {
		return nil
	}
	return out
}

func intersect(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		seen[s] = struct{}{}
	}
	out := []string{}
	for _, s := range b {
		if _, ok := seen[s]; ok {
			out = append(out, s)
			delete(seen, s)
		}
	}
	return out
}
