package services

import (
	"animecat/internal/models"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	jikanAPIURL     = "https://api.jikan.moe/v4"
	defaultTimeout  = 30 * time.Second
	userAgent       = "animecat/1.0"
	defaultPage     = 1
	defaultLimit    = 25
	maxResponseSize = 5 * 1024 * 1024 // 5MB
)

// HTTPDoer is the transport the client sends requests through. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL    string
	httpClient HTTPDoer
	userAgent  string
	logger     *logrus.Logger
}

type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	Logger     *logrus.Logger
	HTTPClient HTTPDoer
}

func NewClient() *Client {
	return NewClientWithConfig(&ClientConfig{})
}

func NewClientWithConfig(config *ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = jikanAPIURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = userAgent
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: config.HTTPClient,
		userAgent:  config.UserAgent,
		logger:     config.Logger,
	}
}

func (c *Client) GetAnimeByID(ctx context.Context, id int) (*models.Anime, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	resp, err := fetch[models.Anime](ctx, c, "/anime/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetTopAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error) {
	return fetch[[]models.Anime](ctx, c, "/top/anime", pageQuery(page, limit))
}

func (c *Client) GetCurrentSeasonAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error) {
	return fetch[[]models.Anime](ctx, c, "/seasons/now", pageQuery(page, limit))
}

func (c *Client) GetUpcomingAnime(ctx context.Context, page, limit int) (*models.Response[[]models.Anime], error) {
	return fetch[[]models.Anime](ctx, c, "/seasons/upcoming", pageQuery(page, limit))
}

func (c *Client) SearchAnime(ctx context.Context, query string, page, limit int) (*models.Response[[]models.Anime], error) {
	return c.SearchAnimeWithFilter(ctx, query, models.Filter{}, page, limit)
}

// SearchAnimeWithFilter searches by title; non-empty filter fields are sent as extra parameters.
func (c *Client) SearchAnimeWithFilter(ctx context.Context, query string, filter models.Filter, page, limit int) (*models.Response[[]models.Anime], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	c.logger.WithField("query", query).Info("Searching anime...")

	params := pageQuery(page, limit)
	params.Set("q", query)
	filter.Apply(params)

	return fetch[[]models.Anime](ctx, c, "/anime", params)
}

func (c *Client) GetAnimeByGenre(ctx context.Context, genreID, page, limit int) (*models.Response[[]models.Anime], error) {
	if genreID <= 0 {
		return nil, ErrInvalidID
	}

	params := pageQuery(page, limit)
	params.Set("genres", strconv.Itoa(genreID))

	return fetch[[]models.Anime](ctx, c, "/anime", params)
}

func (c *Client) GetAnimeCharacters(ctx context.Context, id int) ([]models.CharacterRole, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	resp, err := fetch[[]models.CharacterRole](ctx, c, fmt.Sprintf("/anime/%d/characters", id), nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetAnimeRecommendations(ctx context.Context, id int) ([]models.Recommendation, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	resp, err := fetch[[]models.Recommendation](ctx, c, fmt.Sprintf("/anime/%d/recommendations", id), nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func pageQuery(page, limit int) url.Values {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	return params
}

// fetch performs a single GET against path and decodes the envelope.
func fetch[T any](ctx context.Context, c *Client, path string, query url.Values) (*models.Response[T], error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	body, err := c.makeRequest(ctx, reqURL)
	if err != nil {
		c.failureLogger(reqURL, err)
		return nil, err
	}

	out, err := decodeEnvelope[T](body)
	if err != nil {
		err = &ParseError{URL: reqURL, Err: err}
		c.failureLogger(reqURL, err)
		return nil, err
	}

	return out, nil
}

func (c *Client) makeRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: reasonPhrase(resp), URL: reqURL}
	}

	body, err := readRespBody(resp)
	if err != nil {
		return nil, &ParseError{URL: reqURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.WithFields(logrus.Fields{
		"url":           reqURL,
		"status":        resp.StatusCode,
		"response_size": len(body),
	}).Debug("API request successful")

	return body, nil
}

func decodeEnvelope[T any](body []byte) (*models.Response[T], error) {
	var raw struct {
		Data       json.RawMessage    `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, errors.New("missing data field")
	}

	out := &models.Response[T]{Pagination: raw.Pagination}
	if err := json.Unmarshal(data, &out.Data); err != nil {
		return nil, err
	}
	return out, nil
}

// limit response size to prevent memory issue
func readRespBody(resp *http.Response) ([]byte, error) {
	if resp.ContentLength > maxResponseSize {
		return nil, fmt.Errorf("response too large: %d bytes", resp.ContentLength)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("response too large: exceeded %d bytes", maxResponseSize)
	}
	return body, nil
}

func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); phrase != "" {
		return phrase
	}
	return http.StatusText(resp.StatusCode)
}

func (c *Client) failureLogger(reqURL string, err error) {
	c.logger.WithFields(logrus.Fields{
		"url":   reqURL,
		"error": err.Error(),
	}).Warn("API request failed")
}
