package ingredient

import (
	"math"
	"strings"
)

// Measure is the canonical form of a unit plus its display plural.
type Measure struct {
	Canonical string
	Plural    string
}

// MeasureOption is a {value, label} pair for the host UI's unit picklists.
type MeasureOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type measureDef struct {
	canonical string
	plural    string // empty means canonical + "s"
	aliases   []string
}

// measureDefs is the controlled unit vocabulary, in display order.
// The canonical name and its plural are always recognized as aliases.
var measureDefs = []measureDef{
	{canonical: "bag"},
	{canonical: "bottle"},
	{canonical: "bunch", plural: "bunches"},
	{canonical: "can"},
	{canonical: "clove"},
	{canonical: "cup", aliases: []string{"c"}},
	{canonical: "dash", plural: "dashes"},
	{canonical: "ear"},
	{canonical: "gram", aliases: []string{"g", "gr"}},
	{canonical: "handful"},
	{canonical: "head"},
	{canonical: "kilogram", aliases: []string{"kg", "kgs", "kilo", "kilos"}},
	{canonical: "pound", aliases: []string{"lb", "lbs"}},
	{canonical: "liter", aliases: []string{"l", "litre", "litres"}},
	{canonical: "milliliter", aliases: []string{"ml", "mls", "millilitre", "millilitres"}},
	{canonical: "ounce", aliases: []string{"oz"}},
	{canonical: "package", aliases: []string{"pkg", "pkgs"}},
	{canonical: "pack"},
	{canonical: "pinch", plural: "pinches"},
	{canonical: "pint", aliases: []string{"pt"}},
	{canonical: "quart", aliases: []string{"qt", "qts"}},
	{canonical: "slice"},
	{canonical: "sprig"},
	{canonical: "stick"},
	{canonical: "tablespoon", aliases: []string{"tbsp", "tbsps", "tbs", "tbl"}},
	{canonical: "teaspoon", aliases: []string{"tsp", "tsps"}},
}

// aliasIndex maps every lower-cased alias to its measure. Built once at
// package init and never mutated afterwards, so lookups are safe from any
// goroutine.
var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]Measure {
	idx := make(map[string]Measure, len(measureDefs)*3)
	for _, def := range measureDefs {
		m := Measure{Canonical: def.canonical, Plural: def.plural}
		if m.Plural == "" {
			m.Plural = def.canonical + "s"
		}
		idx[def.canonical] = m
		idx[m.Plural] = m
		for _, a := range def.aliases {
			idx[a] = m
		}
	}
	return idx
}

// CanonicalOf looks a single token up in the unit vocabulary. Matching is
// case-insensitive and exact; no fuzzy or partial matches.
func CanonicalOf(token string) (Measure, bool) {
	m, ok := aliasIndex[strings.ToLower(token)]
	return m, ok
}

// MeasureOptions returns the unit picklist in vocabulary declaration order.
func MeasureOptions() []MeasureOption {
	opts := make([]MeasureOption, 0, len(measureDefs))
	for _, def := range measureDefs {
		plural := def.plural
		if plural == "" {
			plural = def.canonical + "s"
		}
		opts = append(opts, MeasureOption{Value: def.canonical, Label: plural})
	}
	return opts
}

// pluralEpsilon guards the singular/plural decision against float noise.
const pluralEpsilon = 1e-9

// Pluralize returns the display form of a unit for a given quantity.
// Units outside the vocabulary get a plain "s" appended unless they
// already end in one; saved lists depend on that exact behavior.
func Pluralize(unit string, qty float64) string {
	plural := math.Abs(qty-1) > pluralEpsilon
	if m, ok := CanonicalOf(unit); ok {
		if plural {
			return m.Plural
		}
		return m.Canonical
	}
	if plural && !strings.HasSuffix(unit, "s") {
		return unit + "s"
	}
	return unit
}

// NormalizeMeasureText rewrites a free-text unit phrase token by token into
// canonical unit names. Unrecognized tokens pass through lower-cased; empty
// input yields "".
func NormalizeMeasureText(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return ""
	}
	for i, f := range fields {
		if m, ok := aliasIndex[f]; ok {
			fields[i] = m.Canonical
		}
	}
	return strings.Join(fields, " ")
}
