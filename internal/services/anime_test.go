package services

import (
	"animecat/internal/models"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBody = `{
	"data": [{"mal_id": 52991, "title": "Sousou no Frieren"}, {"mal_id": 5114, "title": "Fullmetal Alchemist: Brotherhood"}],
	"pagination": {"last_visible_page": 20, "has_next_page": true, "current_page": 1, "items": {"count": 2, "total": 40, "per_page": 2}}
}`

// recorder captures the last request the test server saw.
type recorder struct {
	path  string
	query url.Values
	raw   string
	ua    string
}

func newTestClient(t *testing.T, status int, body string) (*Client, *recorder, *test.Hook) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.raw = r.URL.RawQuery
		rec.ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL + "/", Logger: log, HTTPClient: srv.Client()})
	return c, rec, hook
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient()
	assert.Equal(t, jikanAPIURL, c.baseURL)
	assert.Equal(t, userAgent, c.userAgent)
	assert.NotNil(t, c.httpClient)
}

func TestGetAnimeByIDUnwrapsPayload(t *testing.T) {
	c, rec, _ := newTestClient(t, http.StatusOK, `{"data": {"mal_id": 21, "title": "One Piece", "score": 8.7}}`)

	anime, err := c.GetAnimeByID(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, "/anime/21", rec.path)
	assert.Equal(t, "animecat/1.0", rec.ua)
	assert.Equal(t, 21, anime.MalID)
	assert.Equal(t, "One Piece", anime.Title)
	require.NotNil(t, anime.Score)
	assert.Equal(t, 8.7, *anime.Score)
}

func TestListEndpointsReturnEnvelope(t *testing.T) {
	tests := []struct {
		name  string
		call  func(c *Client) error
		path  string
		extra map[string]string
	}{
		{"top", func(c *Client) error { _, err := c.GetTopAnime(context.Background(), 2, 10); return err }, "/top/anime", nil},
		{"season now", func(c *Client) error { _, err := c.GetCurrentSeasonAnime(context.Background(), 2, 10); return err }, "/seasons/now", nil},
		{"upcoming", func(c *Client) error { _, err := c.GetUpcomingAnime(context.Background(), 2, 10); return err }, "/seasons/upcoming", nil},
		{"genre", func(c *Client) error { _, err := c.GetAnimeByGenre(context.Background(), 4, 2, 10); return err }, "/anime", map[string]string{"genres": "4"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec, _ := newTestClient(t, http.StatusOK, listBody)
			require.NoError(t, tc.call(c))
			assert.Equal(t, tc.path, rec.path)
			assert.Equal(t, "2", rec.query.Get("page"))
			assert.Equal(t, "10", rec.query.Get("limit"))
			for k, v := range tc.extra {
				assert.Equal(t, v, rec.query.Get(k))
			}
		})
	}
}

func TestListDefaultsPageAndLimit(t *testing.T) {
	c, rec, _ := newTestClient(t, http.StatusOK, listBody)

	resp, err := c.GetTopAnime(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "1", rec.query.Get("page"))
	assert.Equal(t, "25", rec.query.Get("limit"))

	require.Len(t, resp.Data, 2)
	assert.Equal(t, 52991, resp.Data[0].MalID)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 20, resp.Pagination.LastVisiblePage)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.Equal(t, 40, resp.Pagination.Items.Total)
}

func TestSearchEncodesQuery(t *testing.T) {
	c, rec, _ := newTestClient(t, http.StatusOK, listBody)
	query := "Re:Zero & friends/100% 「日本」"

	_, err := c.SearchAnime(context.Background(), "  "+query+" ", 1, 25)
	require.NoError(t, err)
	assert.Equal(t, "/anime", rec.path)
	assert.NotContains(t, rec.raw, " ")
	assert.NotContains(t, rec.raw, "「")

	decoded, err := url.ParseQuery(rec.raw)
	require.NoError(t, err)
	assert.Equal(t, query, decoded.Get("q"))
}

func TestSearchWithFilter(t *testing.T) {
	c, rec, _ := newTestClient(t, http.StatusOK, listBody)

	_, err := c.SearchAnimeWithFilter(context.Background(), "naruto", models.Filter{Type: "tv", Status: "complete", OrderBy: "score", Sort: "desc"}, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, "naruto", rec.query.Get("q"))
	assert.Equal(t, "tv", rec.query.Get("type"))
	assert.Equal(t, "complete", rec.query.Get("status"))
	assert.Equal(t, "score", rec.query.Get("order_by"))
	assert.Equal(t, "desc", rec.query.Get("sort"))
	assert.Empty(t, rec.query.Get("rating"))
}

func TestCharactersAndRecommendationsUnwrap(t *testing.T) {
	c, rec, _ := newTestClient(t, http.StatusOK, `{"data": [{
		"character": {"mal_id": 40, "name": "Luffy, Monkey D."},
		"role": "Main",
		"voice_actors": [{"person": {"mal_id": 1, "name": "Tanaka, Mayumi"}, "language": "Japanese"}, {"person": {"mal_id": 2, "name": "Colleen Clinkenbeard"}, "language": "English"}]
	}]}`)

	chars, err := c.GetAnimeCharacters(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, "/anime/21/characters", rec.path)
	require.Len(t, chars, 1)
	assert.Equal(t, "Main", chars[0].Role)
	require.Len(t, chars[0].VoiceActors, 2)
	assert.Equal(t, "Japanese", chars[0].VoiceActors[0].Language)
	assert.Equal(t, "English", chars[0].VoiceActors[1].Language)

	c, rec, _ = newTestClient(t, http.StatusOK, `{"data": [{"entry": {"mal_id": 1735, "title": "Naruto: Shippuuden"}, "votes": 12}]}`)
	recs, err := c.GetAnimeRecommendations(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, "/anime/20/recommendations", rec.path)
	require.Len(t, recs, 1)
	assert.Equal(t, 1735, recs[0].Entry.MalID)
	assert.Equal(t, 12, recs[0].Votes)
}

func TestHTTPErrorCarriesStatus(t *testing.T) {
	c, _, hook := newTestClient(t, http.StatusNotFound, `{"status": 404, "type": "BadResponseException"}`)

	anime, err := c.GetAnimeByID(context.Background(), 999999)
	assert.Nil(t, anime)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "Not Found", httpErr.Status)
	assert.Equal(t, "jikan API error: 404 Not Found", err.Error())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestParseErrors(t *testing.T) {
	for name, body := range map[string]string{
		"malformed json": `{"data": [`,
		"missing data":   `{"pagination": {"last_visible_page": 1}}`,
		"null data":      `{"data": null}`,
		"wrong shape":    `{"data": "not an object"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _, _ := newTestClient(t, http.StatusOK, body)
			_, err := c.GetAnimeByID(context.Background(), 1)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "got %T: %v", err, err)
		})
	}
}

type failingDoer struct{ err error }

func (f failingDoer) Do(*http.Request) (*http.Response, error) { return nil, f.err }

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp: lookup api.jikan.moe: no such host")
	c := NewClientWithConfig(&ClientConfig{HTTPClient: failingDoer{err: cause}})

	_, err := c.GetTopAnime(context.Background(), 1, 25)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, cause)
	assert.True(t, strings.HasPrefix(transportErr.URL, jikanAPIURL+"/top/anime?"))

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestArgumentValidationSkipsNetwork(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{HTTPClient: failingDoer{err: errors.New("must not be called")}})
	ctx := context.Background()

	_, err := c.GetAnimeByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = c.GetAnimeCharacters(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = c.GetAnimeRecommendations(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = c.GetAnimeByGenre(ctx, 0, 1, 25)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = c.SearchAnime(ctx, "   ", 1, 25)
	assert.ErrorIs(t, err, ErrEmptyQuery)
	_, err = c.SearchAnimeWithFilter(ctx, "bleach", models.Filter{Type: "cartoon"}, 1, 25)
	assert.ErrorIs(t, err, models.ErrInvalidFilter)
}
