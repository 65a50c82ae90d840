package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes loaded datasets by source path for the life of the process.
// Concurrent first requests for one source share a single read. Failed loads
// are not remembered.
type Cache struct {
	layout Layout
	logger *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	sets  map[string]*Dataset
	loads int
}

func NewCache(layout Layout, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		layout: layout,
		logger: logger,
		sets:   make(map[string]*Dataset),
	}
}

// Get returns the dataset for source, reading the workbook on first use.
func (c *Cache) Get(ctx context.Context, source string) (*Dataset, error) {
	key := filepath.Clean(source)

	if ds, ok := c.lookup(key); ok {
		return ds, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		if ds, ok := c.lookup(key); ok {
			return ds, nil
		}

		start := time.Now()
		ds, err := Load(ctx, source, c.layout)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.sets[key] = ds
		c.loads++
		c.mu.Unlock()

		c.logger.Info("workbook loaded",
			"source", source,
			"sheet", c.layout.Sheet,
			"records", ds.Len(),
			"duration", time.Since(start),
		)
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("workbook load shared", "source", source)
	}
	return v.(*Dataset), nil
}

// Loads reports how many times a workbook was actually read.
func (c *Cache) Loads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads
}

func (c *Cache) lookup(key string) (*Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.sets[key]
	return ds, ok
}
