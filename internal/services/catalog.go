package services

import (
	"animecat/internal/cache"
	"animecat/internal/models"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	animeCachePrefix = "anime:"
	defaultCacheTTL  = 10 * time.Minute
)

// CatalogService sits in front of a Provider and adds the policies the
// upstream client leaves to its caller: a shared rate limit and an optional
// redis response cache. Errors are never cached.
type CatalogService struct {
	provider Provider
	limiter  *rate.Limiter
	redis    *redis.Client
	cacheTTL time.Duration
	logger   *logrus.Logger
}

// CatalogConfig configures a CatalogService. RPS <= 0 disables the limiter
// and a nil Redis disables the cache.
type CatalogConfig struct {
	Provider Provider
	RPS      float64
	Burst    int
	Redis    *redis.Client
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

func NewCatalogService(config *CatalogConfig) *CatalogService {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaultCacheTTL
	}

	var limiter *rate.Limiter
	if config.RPS > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RPS), burst)
	}

	return &CatalogService{
		provider: config.Provider,
		limiter:  limiter,
		redis:    config.Redis,
		cacheTTL: config.CacheTTL,
		logger:   config.Logger,
	}
}

func (s *CatalogService) GetAnimeByID(ctx context.Context, id int) (*models.Anime, error) {
	return cached(ctx, s, cacheKey("id", id), func(ctx context.Context) (*models.Anime, error) {
		return s.provider.GetAnimeByID(ctx, id)
	})
}

func (s *CatalogService) GetTopAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error) {
	return cached(ctx, s, cacheKey("top", page, limit), func(ctx context.Context) (*models.Response[[]models.Anime], error) {
		return s.provider.GetTopAnime(ctx, page, limit)
	})
}

func (s *CatalogService) GetCurrentSeasonAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error) {
	return cached(ctx, s, cacheKey("season:now", page, limit), func(ctx context.Context) (*models.Response[[]models.Anime], error) {
		return s.provider.GetCurrentSeasonAnime(ctx, page, limit)
	})
}

func (s *CatalogService) GetUpcomingAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error) {
	return cached(ctx, s, cacheKey("season:upcoming", page, limit), func(ctx context.Context) (*models.Response[[]models.Anime], error) {
		return s.provider.GetUpcomingAnime(ctx, page, limit)
	})
}

func (s *CatalogService) SearchAnime(ctx context.Context, query string, page, limit int) (*models.Response[[]models.Anime], error) {
	return s.SearchAnimeWithFilter(ctx, query, models.Filter{}, page, limit)
}

func (s *CatalogService) SearchAnimeWithFilter(ctx context.Context, query string, filter models.Filter, page, limit int) (*models.Response[[]models.Anime], error) {
	key := cacheKey("search", strings.ToLower(strings.TrimSpace(query)),
		filter.Type, filter.Status, filter.Rating, filter.OrderBy, filter.Sort, page, limit)
	return cached(ctx, s, key, func(ctx context.Context) (*models.Response[[]models.Anime], error) {
		return s.provider.SearchAnimeWithFilter(ctx, query, filter, page, limit)
	})
}

func (s *CatalogService) GetAnimeByGenre(ctx context.Context, genreID, page, limit int) (*models.Response[[]models.Anime], error) {
	return cached(ctx, s, cacheKey("genre", genreID, page, limit), func(ctx context.Context) (*models.Response[[]models.Anime], error) {
		return s.provider.GetAnimeByGenre(ctx, genreID, page, limit)
	})
}

func (s *CatalogService) GetAnimeCharacters(ctx context.Context, id int) ([]models.CharacterRole, error) {
	return cached(ctx, s, cacheKey("characters", id), func(ctx context.Context) ([]models.CharacterRole, error) {
		return s.provider.GetAnimeCharacters(ctx, id)
	})
}

func (s *CatalogService) GetAnimeRecommendations(ctx context.Context, id int) ([]models.Recommendation, error) {
	return cached(ctx, s, cacheKey("recommendations", id), func(ctx context.Context) ([]models.Recommendation, error) {
		return s.provider.GetAnimeRecommendations(ctx, id)
	})
}

// wait blocks until the limiter admits one upstream call.
func (s *CatalogService) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return nil
}

func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) (T, error)) (T, error) {
	var out T

	// check cache first
	if s.redis != nil {
		found, err := cache.GetJSON(ctx, s.redis, key, &out)
		if err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Failed to read from cache")
		} else if found {
			s.logger.WithField("key", key).Debug("Retrieved result from cache")
			return out, nil
		}
	}

	if err := s.wait(ctx); err != nil {
		return out, err
	}

	out, err := load(ctx)
	if err != nil {
		return out, err
	}

	if s.redis != nil {
		if err := cache.SetJSON(ctx, s.redis, key, out, s.cacheTTL); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Failed to write result to cache")
		} else {
			s.logger.WithField("key", key).Debug("Result cached successfully")
		}
	}

	return out, nil
}

func cacheKey(op string, parts ...any) string {
	var b strings.Builder
	b.WriteString(animeCachePrefix)
	b.WriteString(op)
	for _, p := range parts {
		fmt.Fprintf(&b, ":%v", p)
	}
	return b.String()
}
