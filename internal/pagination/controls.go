package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

type Link struct {
	Token
	URL    string `json:"url,omitempty"`
	Active bool   `json:"active,omitempty"`
}

// Controls is everything a frontend needs to draw prev/next and page links.
type Controls struct {
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	Pages       []Link `json:"pages"`
	Prev        *Link  `json:"prev,omitempty"`
	Next        *Link  `json:"next,omitempty"`
	Summary     string `json:"summary"`
}

// Empty reports whether there is only one page, in which case nothing should be drawn.
func (c Controls) Empty() bool {
	return c.LastPage <= 1
}

// NewControls builds links for every token in the window. Links point at
// baseURL with query preserved and page replaced. current is clamped to
// [1, last].
func NewControls(current, last int, hasNext bool, baseURL string, query url.Values) Controls {
	if current < 1 {
		current = 1
	}
	if last > 0 && current > last {
		current = last
	}

	c := Controls{
		CurrentPage: current,
		LastPage:    last,
		Pages:       []Link{},
	}
	if c.Empty() {
		return c
	}

	for _, t := range Window(current, last) {
		l := Link{Token: t}
		if !t.Ellipsis {
			l.URL = PageURL(baseURL, query, t.Page)
			l.Active = t.Page == current
		}
		c.Pages = append(c.Pages, l)
	}

	if current > 1 {
		c.Prev = &Link{Token: page(current - 1), URL: PageURL(baseURL, query, current-1)}
	}
	if hasNext {
		c.Next = &Link{Token: page(current + 1), URL: PageURL(baseURL, query, current+1)}
	}
	c.Summary = fmt.Sprintf("Page %d of %d", current, last)

	return c
}

// PageURL returns baseURL with query and the given page. query is not modified.
func PageURL(baseURL string, query url.Values, page int) string {
	q := make(url.Values, len(query)+1)
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	return baseURL + "?" + q.Encode()
}
