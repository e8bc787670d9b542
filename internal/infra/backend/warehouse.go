package backend

import (
	"context"
	"time"

	"example.com/brewery-admin/internal/domain/warehouse"
	"example.com/brewery-admin/internal/infra/cache"
)

const layoutPath = "/api/warehouse/layout"

// WarehouseLayout fetches the layout SVG and keeps it for ttl per params;
// concurrent misses for the same params share one backend call.
type WarehouseLayout struct {
	client *Client
	cache  *cache.TTL[string]
}

func NewWarehouseLayout(c *Client, ttl time.Duration, observer cache.Observer) *WarehouseLayout {
	return &WarehouseLayout{
		client: c,
		cache:  cache.NewTTL[string]("warehouse_layout", ttl, 64, observer),
	}
}

var _ warehouse.LayoutSource = (*WarehouseLayout)(nil)

func (w *WarehouseLayout) Layout(ctx context.Context, params warehouse.LayoutParams) (string, error) {
	return w.cache.GetOrLoad(ctx, params.CacheKey(), func(ctx context.Context) (string, error) {
		return w.client.GetText(ctx, layoutPath, params)
	})
}

// Invalidate drops the cached layout for params.
func (w *WarehouseLayout) Invalidate(params warehouse.LayoutParams) {
	w.cache.Delete(params.CacheKey())
}
