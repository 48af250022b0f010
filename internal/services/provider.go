package services

import (
	"animecat/internal/models"
	"context"
)

// Provider is the port for fetching anime catalog data.
type Provider interface {
	GetAnimeByID(ctx context.Context, id int) (*models.Anime, error)
	GetTopAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error)
	GetCurrentSeasonAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error)
	GetUpcomingAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error)
	SearchAnime(ctx context.Context, query string, page, limit int) (*models.Response[[]models.Anime], error)
	SearchAnimeWithFilter(ctx context.Context, query string, filter models.Filter, page, limit int) (*models.Response[[]models.Anime], error)
	GetAnimeByGenre(ctx context.Context, genreID, page, limit int) (*models.Response[[]models.Anime], error)
	GetAnimeCharacters(ctx context.Context, id int) ([]models.CharacterRole, error)
	GetAnimeRecommendations(ctx context.Context, id int) ([]models.Recommendation, error)
}

var (
	_ Provider = (*Client)(nil)
	_ Provider = (*CatalogService)(nil)
)
