package shoppinglist

import "recipe-organizer/internal/ingredient"

// SourceLine is a raw ingredient line together with the recipe it came from.
type SourceLine struct {
	Raw         string
	RecipeID    string
	RecipeTitle string
}

// GroupEntries parses raw lines and groups the resulting entries by
// normalized label. Group order follows the first appearance of each
// label; lines that normalize to nothing are dropped.
func GroupEntries(lines []SourceLine) []Item {
	index := make(map[string]int, len(lines))
	items := make([]Item, 0, len(lines))

	for _, line := range lines {
		parsed := ingredient.Parse(line.Raw)
		if parsed.NormalizedLabel == "" {
			continue
		}
		entry := ingredient.NewEntry(parsed, line.RecipeID, line.RecipeTitle)

		if i, ok := index[parsed.NormalizedLabel]; ok {
			items[i].Entries = append(items[i].Entries, entry)
			continue
		}
		index[parsed.NormalizedLabel] = len(items)
		items = append(items, Item{
			Label:           parsed.Label,
			NormalizedLabel: parsed.NormalizedLabel,
			Entries:         []ingredient.QuantityEntry{entry},
		})
	}
	return items
}

// RenderLine turns an item into its display form.
func RenderLine(item Item) Line {
	return Line{
		Label:      item.Label,
		Quantity:   ingredient.SummarizeEntries(item.Entries),
		Sources:    ingredient.CollectSourceTitles(item.Entries),
		CrossedOff: item.CrossedOff(),
	}
}
