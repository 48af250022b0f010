package pagination

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

func pages(ns ...int) []Token {
	out := make([]Token, len(ns))
	for i, n := range ns {
		if n == 0 {
			out[i] = ellipsis()
			continue
		}
		out[i] = page(n)
	}
	return out
}

func TestWindowExamples(t *testing.T) {
	assert.Equal(t, "1,...,9,10,11,...,20", render(Window(10, 20)))
	assert.Equal(t, "1,2,3,4", render(Window(2, 4)))
}

func TestWindowNoPagination(t *testing.T) {
	assert.Nil(t, Window(1, 1))
	assert.Nil(t, Window(1, 0))
}

func TestWindowSmallRangesShowEveryPage(t *testing.T) {
	for last := 2; last <= maxVisible; last++ {
		for current := 1; current <= last; current++ {
			got := Window(current, last)
			require.Len(t, got, last)
			for i, tok := range got {
				assert.False(t, tok.Ellipsis)
				assert.Equal(t, i+1, tok.Page)
			}
		}
	}
}

func TestWindowLeadingPages(t *testing.T) {
	for last := 6; last <= 40; last++ {
		for current := 1; current <= 3; current++ {
			assert.Equal(t, pages(1, 2, 3, 4, 0, last), Window(current, last), "current=%d last=%d", current, last)
		}
	}
}

func TestWindowTrailingPages(t *testing.T) {
	for last := 6; last <= 40; last++ {
		for current := last - 2; current <= last; current++ {
			assert.Equal(t, pages(1, 0, last-3, last-2, last-1, last), Window(current, last), "current=%d last=%d", current, last)
		}
	}
}

func TestWindowMiddlePages(t *testing.T) {
	for last := 7; last <= 40; last++ {
		for current := 4; current < last-2; current++ {
			assert.Equal(t, pages(1, 0, current-1, current, current+1, 0, last), Window(current, last), "current=%d last=%d", current, last)
		}
	}
}

func TestWindowAlwaysHasEndsAndCurrent(t *testing.T) {
	for last := 2; last <= 50; last++ {
		for current := 1; current <= last; current++ {
			got := Window(current, last)
			require.NotEmpty(t, got)
			assert.Equal(t, 1, got[0].Page)
			assert.Equal(t, last, got[len(got)-1].Page)

			found := false
			for _, tok := range got {
				if tok.Page == current {
					found = true
				}
			}
			assert.True(t, found, "current=%d last=%d", current, last)
		}
	}
}

func TestNewControls(t *testing.T) {
	q := url.Values{"q": {"one piece"}, "page": {"3"}}
	c := NewControls(3, 20, true, "/api/search", q)

	require.False(t, c.Empty())
	assert.Equal(t, "Page 3 of 20", c.Summary)
	require.NotNil(t, c.Prev)
	assert.Equal(t, 2, c.Prev.Page)
	assert.Equal(t, "/api/search?page=2&q=one+piece", c.Prev.URL)
	require.NotNil(t, c.Next)
	assert.Equal(t, "/api/search?page=4&q=one+piece", c.Next.URL)

	require.Len(t, c.Pages, 6)
	assert.True(t, c.Pages[2].Active)
	assert.True(t, c.Pages[4].Ellipsis)
	assert.Empty(t, c.Pages[4].URL)
	assert.Equal(t, "3", q.Get("page"), "caller query must not be modified")
}

func TestNewControlsFirstAndLastPage(t *testing.T) {
	first := NewControls(1, 8, true, "/api/top", nil)
	assert.Nil(t, first.Prev)
	assert.NotNil(t, first.Next)

	last := NewControls(8, 8, false, "/api/top", nil)
	assert.NotNil(t, last.Prev)
	assert.Nil(t, last.Next)
}

func TestNewControlsClampsCurrentToLast(t *testing.T) {
	c := NewControls(25, 20, false, "/api/top", nil)
	assert.Equal(t, 20, c.CurrentPage)
	assert.Equal(t, "Page 20 of 20", c.Summary)
	require.NotNil(t, c.Prev)
	assert.Equal(t, 19, c.Prev.Page)
	assert.True(t, c.Pages[len(c.Pages)-1].Active)
}

func TestNewControlsSinglePage(t *testing.T) {
	c := NewControls(1, 1, false, "/api/top", nil)
	assert.True(t, c.Empty())
	assert.Empty(t, c.Pages)
	assert.Nil(t, c.Prev)
	assert.Nil(t, c.Next)
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/api/top?limit=10&page=5", PageURL("/api/top", url.Values{"limit": {"10"}}, 5))
}
