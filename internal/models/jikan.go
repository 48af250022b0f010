package models

// Response is the envelope every Jikan endpoint returns. Pagination is only
// sent by list endpoints.
type Response[T any] struct {
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
	Items           struct {
		Count   int `json:"count"`
		Total   int `json:"total"`
		PerPage int `json:"per_page"`
	} `json:"items"`
}

type Anime struct {
	MalID         int        `json:"mal_id"`
	URL           string     `json:"url"`
	Images        ImageSet   `json:"images"`
	Trailer       Trailer    `json:"trailer"`
	Approved      bool       `json:"approved"`
	Titles        []Title    `json:"titles"`
	Title         string     `json:"title"`
	TitleEnglish  *string    `json:"title_english"`
	TitleJapanese *string    `json:"title_japanese"`
	Type          *string    `json:"type"`
	Source        *string    `json:"source"`
	Episodes      *int       `json:"episodes"`
	Status        *string    `json:"status"`
	Airing        bool       `json:"airing"`
	Aired         Aired      `json:"aired"`
	Duration      *string    `json:"duration"`
	Rating        *string    `json:"rating"`
	Score         *float64   `json:"score"`
	ScoredBy      *int       `json:"scored_by"`
	Rank          *int       `json:"rank"`
	Popularity    *int       `json:"popularity"`
	Members       *int       `json:"members"`
	Favorites     *int       `json:"favorites"`
	Synopsis      *string    `json:"synopsis"`
	Background    *string    `json:"background"`
	Season        *string    `json:"season"`
	Year          *int       `json:"year"`
	Broadcast     Broadcast  `json:"broadcast"`
	Producers     []Resource `json:"producers"`
	Licensors     []Resource `json:"licensors"`
	Studios       []Resource `json:"studios"`
	Genres        []Resource `json:"genres"`
	Themes        []Resource `json:"themes"`
	Demographics  []Resource `json:"demographics"`
}

// Resource is a tagged reference to a producer, studio, genre and so on.
type Resource struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type ImageURL struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url,omitempty"`
	LargeImageURL string `json:"large_image_url,omitempty"`
}

type ImageSet struct {
	JPG  ImageURL `json:"jpg"`
	WebP ImageURL `json:"webp"`
}

type Trailer struct {
	YoutubeID *string `json:"youtube_id"`
	URL       *string `json:"url"`
	EmbedURL  *string `json:"embed_url"`
}

type Title struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

type Aired struct {
	From   *string `json:"from"`
	To     *string `json:"to"`
	String *string `json:"string"`
}

type Broadcast struct {
	Day      *string `json:"day"`
	Time     *string `json:"time"`
	Timezone *string `json:"timezone"`
	String   *string `json:"string"`
}

// DisplayTitle prefers the English title over the default one.
func (a Anime) DisplayTitle() string {
	if a.TitleEnglish != nil && *a.TitleEnglish != "" {
		return *a.TitleEnglish
	}
	return a.Title
}
