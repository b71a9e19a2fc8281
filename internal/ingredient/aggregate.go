package ingredient

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// QuantityEntry is one contributing occurrence of an ingredient on a
// shopping list, typically one per recipe that lists it.
type QuantityEntry struct {
	ID                string   `json:"id"`
	QuantityText      string   `json:"quantity_text"`
	Amount            *float64 `json:"amount,omitempty"`
	MeasureText       string   `json:"measure_text"`
	SourceRecipeID    string   `json:"source_recipe_id,omitempty"`
	SourceRecipeTitle string   `json:"source_recipe_title,omitempty"`
}

// NewEntry builds a QuantityEntry from a parsed line with a fresh ID.
func NewEntry(p Parsed, recipeID, recipeTitle string) QuantityEntry {
	return QuantityEntry{
		ID:                uuid.NewString(),
		QuantityText:      p.QuantityText,
		Amount:            p.Amount,
		MeasureText:       p.MeasureText,
		SourceRecipeID:    recipeID,
		SourceRecipeTitle: recipeTitle,
	}
}

// emptySummary is the display sentinel for a line with no entries.
const emptySummary = "—"

// fallbackEntryText stands in for entries that carry no quantity text.
const fallbackEntryText = "As listed"

// SummarizeEntries renders a group of entries sharing one normalized label
// as a single display string. Amounts sum into one quantity when every
// entry has an amount and every canonical unit agrees with the first
// entry's (all unit-less counts also qualify); otherwise the individual
// quantity texts are joined with " + " in entry order.
func SummarizeEntries(entries []QuantityEntry) string {
	if len(entries) == 0 {
		return emptySummary
	}

	canonicalUnit := ""
	eligible := true
	sum := 0.0
	for i, e := range entries {
		if e.Amount == nil {
			eligible = false
			break
		}
		unit := NormalizeMeasureText(e.MeasureText)
		if i == 0 {
			canonicalUnit = unit
		} else if unit != canonicalUnit {
			eligible = false
			break
		}
		sum += *e.Amount
	}

	if eligible {
		return FormatQuantity(sum, canonicalUnit)
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.QuantityText == "" {
			parts = append(parts, fallbackEntryText)
		} else {
			parts = append(parts, e.QuantityText)
		}
	}
	return strings.Join(parts, " + ")
}

// FormatQuantity renders an amount with its unit for display. Values round
// to two decimals; whole values drop the fraction entirely, others drop
// trailing zeros ("2.50" -> "2.5"). The rounded value also decides the
// singular/plural form of the unit.
func FormatQuantity(value float64, measure string) string {
	rounded := math.Round(value*100) / 100

	var num string
	if rounded == math.Trunc(rounded) {
		num = strconv.FormatFloat(rounded, 'f', 0, 64)
	} else {
		num = strings.TrimRight(strconv.FormatFloat(rounded, 'f', 2, 64), "0")
	}

	if measure == "" {
		return num
	}
	return num + " " + Pluralize(measure, rounded)
}

// CollectSourceTitles returns the distinct recipe titles behind a group of
// entries: trimmed, blanks dropped, first-occurrence order preserved.
func CollectSourceTitles(entries []QuantityEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.SourceRecipeTitle)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}
