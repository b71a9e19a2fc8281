package recipe

import "time"

// Recipe is a stored recipe. Ingredients keep their original line text;
// parsing happens when lines are added to a shopping list.
type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SourceURL    string    `json:"source_url,omitempty"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}
