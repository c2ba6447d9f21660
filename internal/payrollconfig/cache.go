package payrollconfig

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ConfigCache memoizes warehouse config lookups for the lifetime of one
// materialization batch. Concurrent loads of the same warehouse collapse into
// a single repository query via singleflight.
type ConfigCache struct {
	service Service

	group singleflight.Group
	mu    sync.RWMutex
	byKey map[string]*PayrollConfig
}

func NewConfigCache(service Service) *ConfigCache {
	return &ConfigCache{
		service: service,
		byKey:   make(map[string]*PayrollConfig),
	}
}

// Get returns the active config for the warehouse, nil when none exists.
func (c *ConfigCache) Get(ctx context.Context, companyID, warehouseID string) (*PayrollConfig, error) {
	key := companyID + ":" + warehouseID

	c.mu.RLock()
	cfg, ok := c.byKey[key]
	c.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		cfg, err := c.service.ResolveForWarehouse(ctx, companyID, warehouseID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.byKey[key] = cfg
		c.mu.Unlock()

		return cfg, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*PayrollConfig), nil
}
