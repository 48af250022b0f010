package handlers

import (
	"animecat/internal/models"
	"animecat/internal/pagination"
	"animecat/internal/services"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	catalog services.Provider
	logger  *logrus.Logger
}

func NewHandler(catalog services.Provider, logger *logrus.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

type itemResponse struct {
	Data any `json:"data"`
}

type listResponse struct {
	Data       []models.Anime      `json:"data"`
	Pagination *models.Pagination  `json:"pagination,omitempty"`
	Controls   pagination.Controls `json:"controls"`
}

func (h *Handler) getAnime(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	anime, err := h.catalog.GetAnimeByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.logger.WithFields(logrus.Fields{
		"mal_id": anime.MalID,
		"title":  anime.DisplayTitle(),
	}).Debug("Served anime")
	writeJSON(w, http.StatusOK, itemResponse{Data: anime})
}

func (h *Handler) getCharacters(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	chars, err := h.catalog.GetAnimeCharacters(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Data: chars})
}

func (h *Handler) getRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	recs, err := h.catalog.GetAnimeRecommendations(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Data: recs})
}

type listFunc func(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error)

// list adapts a page/limit operation into a handler that also returns page controls.
func (h *Handler) list(fn listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit, ok := h.paging(w, r)
		if !ok {
			return
		}

		resp, err := fn(r.Context(), page, limit)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		h.writeList(w, r, page, resp)
	}
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := h.paging(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := searchFilter(q)
	h.logger.WithFields(logrus.Fields{
		"query":   q.Get("q"),
		"filters": filter.ActiveCount(),
	}).Debug("Searching anime")

	resp, err := h.catalog.SearchAnimeWithFilter(r.Context(), q.Get("q"), filter, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.writeList(w, r, page, resp)
}

// searchFilter starts from the default ordering and overrides only the
// fields present in q.
func searchFilter(q url.Values) models.Filter {
	filter := models.DefaultFilter()
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"type", &filter.Type},
		{"status", &filter.Status},
		{"rating", &filter.Rating},
		{"order_by", &filter.OrderBy},
		{"sort", &filter.Sort},
	} {
		if v := strings.TrimSpace(q.Get(f.key)); v != "" {
			*f.dst = v
		}
	}
	return filter
}

type filtersResponse struct {
	Type     []models.FilterOption `json:"type"`
	Status   []models.FilterOption `json:"status"`
	Rating   []models.FilterOption `json:"rating"`
	OrderBy  []models.FilterOption `json:"order_by"`
	Sort     []models.FilterOption `json:"sort"`
	Defaults models.Filter         `json:"defaults"`
}

// filters lists the accepted search filter values and the default ordering.
func (h *Handler) filters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, itemResponse{Data: filtersResponse{
		Type:     models.TypeOptions,
		Status:   models.StatusOptions,
		Rating:   models.RatingOptions,
		OrderBy:  models.OrderByOptions,
		Sort:     models.SortOptions,
		Defaults: models.DefaultFilter(),
	}})
}

func (h *Handler) genre(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	h.list(func(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error) {
		return h.catalog.GetAnimeByGenre(ctx, id, page, limit)
	})(w, r)
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, page int, resp *models.Response[[]models.Anime]) {
	current, last, hasNext := page, 1, false
	if p := resp.Pagination; p != nil {
		if p.CurrentPage > 0 {
			current = p.CurrentPage
		}
		last, hasNext = p.LastVisiblePage, p.HasNextPage
	}

	data := resp.Data
	if data == nil {
		data = []models.Anime{}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data:       data,
		Pagination: resp.Pagination,
		Controls:   pagination.NewControls(current, last, hasNext, r.URL.Path, r.URL.Query()),
	})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// paging reads page and limit. A missing limit stays 0 so the client applies its default.
func (h *Handler) paging(w http.ResponseWriter, r *http.Request) (page, limit int, ok bool) {
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &page}, {"limit", &limit}} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", p.name+" must be a positive integer")
			return 0, 0, false
		}
		*p.dst = n
	}
	if page == 0 {
		page = 1
	}
	return page, limit, true
}
