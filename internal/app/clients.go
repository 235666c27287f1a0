package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/venturematch/backend/internal/cache"
	"github.com/venturematch/backend/internal/pkg/logger"
)

type Clients struct {
	Cache cache.Cache
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis when configured, in-process cache otherwise.
	var c cache.Cache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		rc, err := cache.NewRedisCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		c = rc
	} else {
		log.Warn("REDIS_ADDR not set, using in-process cache")
		c = cache.NewMemoryCache()
	}

	return Clients{Cache: c}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
