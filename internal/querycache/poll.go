package querycache

import (
	"context"
	"time"
)

// Poll инвалидирует ключи с периодом every, пока не отменён ctx.
func (c *Cache) Poll(ctx context.Context, every time.Duration, keys ...Key) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Invalidate(keys...)
		}
	}
}
