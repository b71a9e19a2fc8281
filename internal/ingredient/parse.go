package ingredient

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parsed is the structured form of one free-text ingredient line.
type Parsed struct {
	Label           string   `json:"label"`
	NormalizedLabel string   `json:"normalized_label"`
	QuantityText    string   `json:"quantity_text"`
	Amount          *float64 `json:"amount,omitempty"`
	MeasureText     string   `json:"measure_text"`
}

// vulgarFractions maps single-glyph Unicode fractions to their values.
var vulgarFractions = map[rune]float64{
	'¼': 0.25,
	'½': 0.5,
	'¾': 0.75,
	'⅓': 1.0 / 3.0,
	'⅔': 2.0 / 3.0,
	'⅛': 0.125,
	'⅜': 0.375,
	'⅝': 0.625,
	'⅞': 0.875,
}

// Parse splits a free-text ingredient line ("2 1/2 cups of flour") into
// quantity, measure and label.
//
// A token cursor walks four states in order: leading numeric tokens
// (integers, decimals, simple fractions, vulgar-fraction glyphs) are summed
// into the amount so mixed numbers work. Unit aliases and a single
// trailing "of" are consumed only when at least one number was seen.
// Whatever remains is the label. A unit word with no preceding number is
// label text, not a measure. When everything was consumed as quantity, the
// full trimmed input becomes the label so a bare "3" still yields a usable
// line.
func Parse(raw string) Parsed {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Parsed{}
	}

	tokens := strings.Fields(trimmed)
	cursor := 0

	var amount *float64
	for cursor < len(tokens) {
		v, ok := numericValue(tokens[cursor])
		if !ok {
			break
		}
		if amount == nil {
			amount = new(float64)
		}
		*amount += v
		cursor++
	}

	unitStart := cursor
	if amount != nil {
		for cursor < len(tokens) {
			if _, ok := CanonicalOf(tokens[cursor]); !ok {
				break
			}
			cursor++
		}
	}
	unitEnd := cursor

	if amount != nil && cursor < len(tokens) && tokens[cursor] == "of" {
		cursor++
	}

	var label string
	if cursor < len(tokens) {
		labelTokens := make([]string, 0, len(tokens)-cursor)
		for _, t := range tokens[cursor:] {
			labelTokens = append(labelTokens, capitalize(t))
		}
		label = strings.Join(labelTokens, " ")
	} else {
		label = trimmed
	}

	rawUnit := strings.Join(tokens[unitStart:unitEnd], " ")
	measureText := NormalizeMeasureText(rawUnit)
	if measureText == "" {
		measureText = rawUnit
	}

	return Parsed{
		Label:           label,
		NormalizedLabel: NormalizeLabel(label),
		QuantityText:    strings.Join(tokens[:unitEnd], " "),
		Amount:          amount,
		MeasureText:     measureText,
	}
}

// numericValue parses one token as a quantity component. Fractions with a
// zero denominator are not numbers; the token stays label text.
func numericValue(token string) (float64, bool) {
	if r, size := utf8.DecodeRuneInString(token); size == len(token) {
		if v, ok := vulgarFractions[r]; ok {
			return v, true
		}
	}
	if num, den, found := strings.Cut(token, "/"); found {
		if !isDigits(num) || !isDigits(den) {
			return 0, false
		}
		n, _ := strconv.ParseFloat(num, 64)
		d, _ := strconv.ParseFloat(den, 64)
		if d == 0 {
			return 0, false
		}
		return n / d, true
	}
	if whole, frac, found := strings.Cut(token, "."); found {
		if !isDigits(whole) || !isDigits(frac) {
			return 0, false
		}
		v, _ := strconv.ParseFloat(token, 64)
		return v, true
	}
	if isDigits(token) {
		v, _ := strconv.ParseFloat(token, 64)
		return v, true
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// capitalize upper-cases the first rune of a token, as typed otherwise.
func capitalize(token string) string {
	r, size := utf8.DecodeRuneInString(token)
	if r == utf8.RuneError {
		return token
	}
	return string(unicode.ToUpper(r)) + token[size:]
}
