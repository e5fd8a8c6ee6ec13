package marvel

// Description normalization constants.
const (
	MaxDescriptionLen  = 210
	DescriptionSuffix  = "..."
	NoDescriptionText  = "There is no description for this character"
	MaxComicsDisplayed = 10
	NoComicsText       = "Comics not found"
)

// Character is one normalized catalog entry.
type Character struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Thumbnail   string         `json:"thumbnail"`
	Homepage    string         `json:"homepage"`
	Wiki        string         `json:"wiki"`
	Comics      []ComicSummary `json:"comics"`
}

// ComicSummary names one comic a character appears in.
type ComicSummary struct {
	Name string `json:"name"`
}

// DisplayComics returns at most MaxComicsDisplayed comics, in server order.
func (c Character) DisplayComics() []ComicSummary {
	if len(c.Comics) <= MaxComicsDisplayed {
		return c.Comics
	}
	return c.Comics[:MaxComicsDisplayed]
}

// envelope is the top-level API response.
type envelope struct {
	Data struct {
		Results []rawCharacter `json:"results"`
	} `json:"data"`
}

type rawCharacter struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   struct {
		Path      string `json:"path"`
		Extension string `json:"extension"`
	} `json:"thumbnail"`
	URLs []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"urls"`
	Comics struct {
		Items []struct {
			Name        string `json:"name"`
			ResourceURI string `json:"resourceURI"`
		} `json:"items"`
	} `json:"comics"`
}

// normalize maps a raw record to a Character. Links are taken by position
// from the urls array and are not validated.
func normalize(raw rawCharacter) Character {
	c := Character{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: normalizeDescription(raw.Description),
		Thumbnail:   raw.Thumbnail.Path + "." + raw.Thumbnail.Extension,
		Homepage:    urlAt(raw, 0),
		Wiki:        urlAt(raw, 1),
		Comics:      make([]ComicSummary, 0, len(raw.Comics.Items)),
	}
	for _, item := range raw.Comics.Items {
		c.Comics = append(c.Comics, ComicSummary{Name: item.Name})
	}
	return c
}

func urlAt(raw rawCharacter, i int) string {
	if i >= len(raw.URLs) {
		return ""
	}
	return raw.URLs[i].URL
}

// normalizeDescription substitutes the placeholder for empty descriptions.
// Any other description is cut to at most MaxDescriptionLen runes and always
// ends with DescriptionSuffix.
func normalizeDescription(desc string) string {
	if desc == "" {
		return NoDescriptionText
	}
	runes := []rune(desc)
	if len(runes) > MaxDescriptionLen {
		runes = runes[:MaxDescriptionLen]
	}
	return string(runes) + DescriptionSuffix
}
