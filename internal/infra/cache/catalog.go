package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyRoomTypes = "catalog:room_types"
	keyServices  = "catalog:services"
	keyRoomType  = "catalog:room_type:"
)

// CatalogReadStore serves room types and services from Redis in front of
// another store. Availability is never cached.
type CatalogReadStore struct {
	next queries.CatalogReadStore
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCatalogReadStore(next queries.CatalogReadStore, rdb *redis.Client, ttl time.Duration) *CatalogReadStore {
	return &CatalogReadStore{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
	}
}

func (c *CatalogReadStore) ListRoomTypes(ctx context.Context) ([]*queries.RoomTypeView, error) {
	return cached(ctx, c, keyRoomTypes, c.next.ListRoomTypes)
}

func (c *CatalogReadStore) FindRoomType(ctx context.Context, id uuid.UUID) (*queries.RoomTypeView, error) {
	return cached(ctx, c, keyRoomType+id.String(), func(ctx context.Context) (*queries.RoomTypeView, error) {
		return c.next.FindRoomType(ctx, id)
	})
}

func (c *CatalogReadStore) ListServices(ctx context.Context) ([]*queries.ServiceView, error) {
	return cached(ctx, c, keyServices, c.next.ListServices)
}

func (c *CatalogReadStore) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomTypeID *uuid.UUID) ([]*queries.AvailableRoomView, error) {
	return c.next.FindAvailableRooms(ctx, checkIn, checkOut, roomTypeID)
}

// Invalidate drops every cached catalog entry.
func (c *CatalogReadStore) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, "catalog:*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// cached treats Redis as best effort: read or write failures fall back to the wrapped store.
func cached[T any](ctx context.Context, c *CatalogReadStore, key string, load func(context.Context) (T, error)) (T, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
			return v, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("catalog cache read failed", "key", key, "error", err.Error())
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if data, jsonErr := json.Marshal(v); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			slog.Warn("catalog cache write failed", "key", key, "error", setErr.Error())
		}
	}
	return v, nil
}
