package container

import (
	"animecat/internal/cache"
	"animecat/internal/config"
	"animecat/internal/handlers"
	"animecat/internal/logger"
	"animecat/internal/services"
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Redis          *redis.Client
	Logger         *logrus.Logger
	CatalogService *services.CatalogService
}

func New(ctx context.Context) (*Container, error) {
	log := logger.Get()

	redisCfg := config.Redis()
	redisClient, err := cache.New(ctx, redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	if redisClient != nil {
		log.Info("Redis connection successful")
	} else {
		log.Info("R_HOST not set, response cache disabled")
	}

	jikanCfg := config.Jikan()
	client := services.NewClientWithConfig(&services.ClientConfig{
		BaseURL:   jikanCfg.BaseURL,
		Timeout:   jikanCfg.Timeout,
		UserAgent: jikanCfg.UserAgent,
		Logger:    log,
	})

	rl := config.RateLimit()
	catalog := services.NewCatalogService(&services.CatalogConfig{
		Provider: client,
		RPS:      rl.RPS,
		Burst:    rl.Burst,
		Redis:    redisClient,
		CacheTTL: redisCfg.TTL,
		Logger:   log,
	})

	return &Container{
		Redis:          redisClient,
		Logger:         log,
		CatalogService: catalog,
	}, nil
}

// Router builds the HTTP API on top of the catalog service.
func (c *Container) Router() http.Handler {
	return handlers.NewRouter(handlers.NewHandler(c.CatalogService, c.Logger))
}

func (c *Container) Close() {
	if c.Redis != nil {
		c.Redis.Close()
		c.Logger.Info("Redis connection closed")
	}
}
