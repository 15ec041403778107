package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const availabilityTTL = 60 * time.Second

// Availability caches the public availability payload per
// (tenant, service, date). All methods are nil-receiver safe so the API
// runs unchanged without redis configured.
type Availability struct {
	rdb *redis.Client
}

func NewAvailability(addr string) *Availability {
	if addr == "" {
		return nil
	}

	return &Availability{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func key(tenantID, serviceID uint, date string) string {
	return fmt.Sprintf("availability:%d:%d:%s", tenantID, serviceID, date)
}

func (c *Availability) Get(ctx context.Context, tenantID, serviceID uint, date string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	b, err := c.rdb.Get(ctx, key(tenantID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Availability) Set(ctx context.Context, tenantID, serviceID uint, date string, payload []byte) {
	if c == nil {
		return
	}

	// best effort: a failed cache write only costs a recompute
	c.rdb.Set(ctx, key(tenantID, serviceID, date), payload, availabilityTTL)
}

// Invalidate drops the cached payloads for every affected date. Called
// after slot regeneration and after bookings change slot capacity.
func (c *Availability) Invalidate(ctx context.Context, tenantID, serviceID uint, dates ...string) {
	if c == nil || len(dates) == 0 {
		return
	}

	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, key(tenantID, serviceID, d))
	}
	c.rdb.Del(ctx, keys...)
}
