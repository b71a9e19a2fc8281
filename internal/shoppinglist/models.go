package shoppinglist

import (
	"time"

	"recipe-organizer/internal/ingredient"
)

// Item is one shopping list line: all quantity entries that share a
// normalized label, displayed under the label of the first entry.
type Item struct {
	Label           string                     `json:"label"`
	NormalizedLabel string                     `json:"normalized_label"`
	Entries         []ingredient.QuantityEntry `json:"entries"`
	Position        int                        `json:"position"`
	CrossedOffAt    *time.Time                 `json:"crossed_off_at,omitempty"`
}

// CrossedOff reports whether the item has been checked off.
func (i Item) CrossedOff() bool {
	return i.CrossedOffAt != nil
}

// Line is an item rendered for display.
type Line struct {
	Label      string   `json:"label"`
	Quantity   string   `json:"quantity"`
	Sources    []string `json:"sources,omitempty"`
	CrossedOff bool     `json:"crossed_off"`
}
