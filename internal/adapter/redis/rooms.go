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

// RoomRegistry records who a companion room was issued to. Entries expire
// with the grant so the registry never outlives the rooms it describes.
type RoomRegistry struct {
	rdb goredis.UniversalClient
}

// NewRoomRegistry creates a RoomRegistry.
func NewRoomRegistry(rdb goredis.UniversalClient) *RoomRegistry {
	return &RoomRegistry{rdb: rdb}
}

type roomRecord struct {
	Owner     string    `json:"owner"`
	Identity  string    `json:"identity"`
	CreatedAt time.Time `json:"createdAt"`
}

func roomKey(name string) string {
	return fmt.Sprintf("rooms:%s", name)
}

// Register stores the owner of a freshly named room. A name collision returns
// domain.ErrAlreadyExists so the caller can draw a new name.
func (r *RoomRegistry) Register(ctx context.Context, roomName, owner, identity string, ttl time.Duration) error {
	b, err := json.Marshal(roomRecord{Owner: owner, Identity: identity, CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("redis.Register: %w", err)
	}

	err = r.rdb.SetArgs(ctx, roomKey(roomName), b, goredis.SetArgs{Mode: "NX", TTL: ttl}).Err()
	if errors.Is(err, goredis.Nil) {
		return fmt.Errorf("room %s: %w", roomName, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("redis.Register: %w", err)
	}
	return nil
}

// Owner returns the registered owner of roomName, or domain.ErrNotFound.
func (r *RoomRegistry) Owner(ctx context.Context, roomName string) (string, error) {
	val, err := r.rdb.Get(ctx, roomKey(roomName)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return "", fmt.Errorf("room %s: %w", roomName, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("redis.Owner: %w", err)
	}

	var rec roomRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return "", fmt.Errorf("redis.Owner: decode: %w", err)
	}
	return rec.Owner, nil
}

// Touch extends a live room's registration, e.g. while its session is active.
func (r *RoomRegistry) Touch(ctx context.Context, roomName string, ttl time.Duration) error {
	ok, err := r.rdb.Expire(ctx, roomKey(roomName), ttl).Result()
	if err != nil {
		return fmt.Errorf("redis.Touch: %w", err)
	}
	if !ok {
		return fmt.Errorf("room %s: %w", roomName, domain.ErrNotFound)
	}
	return nil
}
