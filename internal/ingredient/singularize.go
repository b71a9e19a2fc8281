package ingredient

import "strings"

// uncountable nouns that keep the same form in singular and plural.
var uncountable = map[string]struct{}{
	"fish":  {},
	"sheep": {},
	"deer":  {},
	"money": {},
	"rice":  {},
	"bread": {},
	"water": {},
	"salt":  {},
	"sugar": {},
	"flour": {},
}

// irregularPlurals maps plural -> singular for words the suffix rules would
// mangle. This is a closed list: the normalizer generates grouping keys,
// it is not a lemmatizer.
var irregularPlurals = map[string]string{
	"tomatoes": "tomato",
	"potatoes": "potato",
	"heroes":   "hero",
	"leaves":   "leaf",
	"loaves":   "loaf",
	"halves":   "half",
	"knives":   "knife",
	"wives":    "wife",
	"lives":    "life",
	"children": "child",
	"men":      "man",
	"women":    "woman",
	"feet":     "foot",
	"teeth":    "tooth",
	"geese":    "goose",
	"mice":     "mouse",
	"people":   "person",
	"indices":  "index",
	"cacti":    "cactus",
	"fungi":    "fungus",
}

// NormalizeLabel produces the grouping key for an ingredient label:
// lower-cased, whitespace-collapsed, each purely alphabetic token
// singularized. Idempotent: normalizing a normalized label is a no-op.
func NormalizeLabel(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		fields[i] = singularize(f)
	}
	return strings.Join(fields, " ")
}

// singularize applies the closed rule set to one token, first match wins.
// Tokens containing anything but lowercase letters are left alone.
func singularize(token string) string {
	if !isLowerAlpha(token) {
		return token
	}
	if _, ok := uncountable[token]; ok {
		return token
	}
	if singular, ok := irregularPlurals[token]; ok {
		return singular
	}
	n := len(token)
	switch {
	case n > 3 && strings.HasSuffix(token, "ies"):
		return token[:n-3] + "y"
	case n > 3 && strings.HasSuffix(token, "ves"):
		return token[:n-3] + "f"
	case n > 3 && (strings.HasSuffix(token, "ches") || strings.HasSuffix(token, "shes") ||
		strings.HasSuffix(token, "sses") || strings.HasSuffix(token, "xes") ||
		strings.HasSuffix(token, "zes")):
		return token[:n-2]
	case n > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss"):
		return token[:n-1]
	}
	return token
}

func isLowerAlpha(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
