package slotcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

// Cache keeps computed free-slot lists in redis for a short TTL. A cache
// problem is never an API problem: failures degrade to a recompute.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func key(doctorID uint, date time.Time) string {
	return fmt.Sprintf("slots:%d:%s", doctorID, booking.DateOnly(date).Format("2006-01-02"))
}

func (c *Cache) Get(ctx context.Context, doctorID uint, date time.Time) ([]booking.OpenInterval, bool) {
	raw, err := c.rdb.Get(ctx, key(doctorID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("slot cache get:", err)
		}
		return nil, false
	}

	var slots []booking.OpenInterval
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Println("slot cache decode:", err)
		return nil, false
	}

	return slots, true
}

func (c *Cache) Set(ctx context.Context, doctorID uint, date time.Time, slots []booking.OpenInterval) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(doctorID, date), raw, c.ttl).Err(); err != nil {
		log.Println("slot cache set:", err)
	}
}

// Invalidate drops the cached list after a booking or cancellation touched
// the doctor's day.
func (c *Cache) Invalidate(ctx context.Context, doctorID uint, date time.Time) {
	if err := c.rdb.Del(ctx, key(doctorID, date)).Err(); err != nil {
		log.Println("slot cache invalidate:", err)
	}
}
