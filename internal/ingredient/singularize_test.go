package ingredient

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
		desc string
	}{
		{"Tomatoes", "tomato", "irregular plural"},
		{"Baby Spinach", "baby spinach", "lower-casing"},
		{"  green   onions ", "green onion", "whitespace collapse plus -s"},
		{"berries", "berry", "-ies to y"},
		{"leaves", "leaf", "irregular before -ves rule"},
		{"wolves", "wolf", "-ves to f"},
		{"knives", "knife", "irregular -ves"},
		{"peaches", "peach", "-ches drops es"},
		{"radishes", "radish", "-shes drops es"},
		{"boxes", "box", "-xes drops es"},
		{"children", "child", "irregular"},
		{"indices", "index", "irregular"},
		{"cacti", "cactus", "irregular"},
		{"fish", "fish", "uncountable"},
		{"rice", "rice", "uncountable"},
		{"flour", "flour", "uncountable"},
		{"swiss", "swiss", "-ss left alone"},
		{"eggs", "egg", "plain -s"},
		{"gas", "gas", "too short for -s rule"},
		{"2% milk", "2% milk", "non-alphabetic token untouched"},
		{"m&ms", "m&ms", "punctuation token untouched"},
		{"", "", "empty"},
	}

	for _, tc := range tests {
		if got := NormalizeLabel(tc.in); got != tc.want {
			t.Errorf("%s: NormalizeLabel(%q) = %q, want %q", tc.desc, tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLabel_Idempotent(t *testing.T) {
	inputs := []string{
		"Tomatoes", "berries", "leaves", "children", "Baby  Carrots",
		"fish", "2 liters of soda", "olives", "sweet potatoes", "eggs",
	}
	for _, in := range inputs {
		once := NormalizeLabel(in)
		twice := NormalizeLabel(once)
		if once != twice {
			t.Errorf("NormalizeLabel not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
