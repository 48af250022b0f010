package models

import (
	"errors"
	"fmt"
	"net/url"
)

var ErrInvalidFilter = errors.New("invalid filter")

type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var (
	TypeOptions = []FilterOption{
		{Label: "All Types", Value: ""},
		{Label: "TV", Value: "tv"},
		{Label: "Movie", Value: "movie"},
		{Label: "OVA", Value: "ova"},
		{Label: "Special", Value: "special"},
		{Label: "ONA", Value: "ona"},
	}
	StatusOptions = []FilterOption{
		{Label: "All Status", Value: ""},
		{Label: "Airing", Value: "airing"},
		{Label: "Complete", Value: "complete"},
		{Label: "Upcoming", Value: "upcoming"},
	}
	RatingOptions = []FilterOption{
		{Label: "All Ratings", Value: ""},
		{Label: "G - All Ages", Value: "g"},
		{Label: "PG - Children", Value: "pg"},
		{Label: "PG-13 - Teens 13+", Value: "pg13"},
		{Label: "R - 17+", Value: "r17"},
		{Label: "R+ - Mild Nudity", Value: "r"},
	}
	OrderByOptions = []FilterOption{
		{Label: "Score", Value: "score"},
		{Label: "Popularity", Value: "popularity"},
		{Label: "Favorites", Value: "favorites"},
		{Label: "Title", Value: "title"},
		{Label: "Start Date", Value: "start_date"},
	}
	SortOptions = []FilterOption{
		{Label: "Descending", Value: "desc"},
		{Label: "Ascending", Value: "asc"},
	}
)

// Filter narrows an /anime search. Empty fields are not sent upstream.
type Filter struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Rating  string `json:"rating"`
	OrderBy string `json:"order_by"`
	Sort    string `json:"sort"`
}

func DefaultFilter() Filter {
	return Filter{OrderBy: "score", Sort: "desc"}
}

// ActiveCount counts the narrowing fields that are set. Ordering is not a filter.
func (f Filter) ActiveCount() int {
	n := 0
	for _, v := range []string{f.Type, f.Status, f.Rating} {
		if v != "" {
			n++
		}
	}
	return n
}

func (f Filter) Validate() error {
	checks := []struct {
		name    string
		value   string
		options []FilterOption
	}{
		{"type", f.Type, TypeOptions},
		{"status", f.Status, StatusOptions},
		{"rating", f.Rating, RatingOptions},
		{"order_by", f.OrderBy, OrderByOptions},
		{"sort", f.Sort, SortOptions},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if !hasOption(c.options, c.value) {
			return fmt.Errorf("%w: unknown %s %q", ErrInvalidFilter, c.name, c.value)
		}
	}
	return nil
}

// Apply copies the non-empty fields into q.
func (f Filter) Apply(q url.Values) {
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("type", f.Type)
	set("status", f.Status)
	set("rating", f.Rating)
	set("order_by", f.OrderBy)
	set("sort", f.Sort)
}

func hasOption(options []FilterOption, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
