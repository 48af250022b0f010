package models

type CharacterRole struct {
	Character   Character    `json:"character"`
	Role        string       `json:"role"`
	VoiceActors []VoiceActor `json:"voice_actors"`
}

type Character struct {
	MalID  int      `json:"mal_id"`
	URL    string   `json:"url"`
	Images ImageSet `json:"images"`
	Name   string   `json:"name"`
}

type VoiceActor struct {
	Person   Person `json:"person"`
	Language string `json:"language"`
}

type Person struct {
	MalID  int      `json:"mal_id"`
	URL    string   `json:"url"`
	Images ImageSet `json:"images"`
	Name   string   `json:"name"`
}

type Recommendation struct {
	Entry struct {
		MalID  int      `json:"mal_id"`
		URL    string   `json:"url"`
		Images ImageSet `json:"images"`
		Title  string   `json:"title"`
	} `json:"entry"`
	URL   string `json:"url"`
	Votes int    `json:"votes"`
}
