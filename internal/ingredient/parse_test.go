package ingredient

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Parsed
	}{
		{
			name: "MixedNumberWithUnitAndOf",
			in:   "2 1/2 cups of flour",
			want: Parsed{
				Label:           "Flour",
				NormalizedLabel: "flour",
				QuantityText:    "2 1/2 cups",
				Amount:          floatPtr(2.5),
				MeasureText:     "cup",
			},
		},
		{
			name: "SimpleUnit",
			in:   "3 tbsp olive oil",
			want: Parsed{
				Label:           "Olive Oil",
				NormalizedLabel: "olive oil",
				QuantityText:    "3 tbsp",
				Amount:          floatPtr(3),
				MeasureText:     "tablespoon",
			},
		},
		{
			name: "VulgarFraction",
			in:   "½ cup milk",
			want: Parsed{
				Label:           "Milk",
				NormalizedLabel: "milk",
				QuantityText:    "½ cup",
				Amount:          floatPtr(0.5),
				MeasureText:     "cup",
			},
		},
		{
			name: "Decimal",
			in:   "1.5 kg potatoes",
			want: Parsed{
				Label:           "Potatoes",
				NormalizedLabel: "potato",
				QuantityText:    "1.5 kg",
				Amount:          floatPtr(1.5),
				MeasureText:     "kilogram",
			},
		},
		{
			name: "NoQuantityFreeText",
			in:   "a pinch of salt",
			want: Parsed{
				Label:           "A Pinch Of Salt",
				NormalizedLabel: "a pinch of salt",
				QuantityText:    "",
				Amount:          nil,
				MeasureText:     "",
			},
		},
		{
			name: "UnitWithoutNumberStaysInLabel",
			in:   "cup of sugar",
			want: Parsed{
				Label:           "Cup Of Sugar",
				NormalizedLabel: "cup of sugar",
				QuantityText:    "",
				Amount:          nil,
				MeasureText:     "",
			},
		},
		{
			name: "NumberWithoutLabelFallsBack",
			in:   "3",
			want: Parsed{
				Label:           "3",
				NormalizedLabel: "3",
				QuantityText:    "3",
				Amount:          floatPtr(3),
				MeasureText:     "",
			},
		},
		{
			name: "NumberAndUnitOnlyFallsBack",
			in:   "2 cups",
			want: Parsed{
				Label:           "2 cups",
				NormalizedLabel: "2 cup",
				QuantityText:    "2 cups",
				Amount:          floatPtr(2),
				MeasureText:     "cup",
			},
		},
		{
			name: "ZeroDenominatorIsNotANumber",
			in:   "1/0 things",
			want: Parsed{
				Label:           "1/0 Things",
				NormalizedLabel: "1/0 thing",
				QuantityText:    "",
				Amount:          nil,
				MeasureText:     "",
			},
		},
		{
			name: "NoUnitKeepsLabel",
			in:   "2 eggs",
			want: Parsed{
				Label:           "Eggs",
				NormalizedLabel: "egg",
				QuantityText:    "2",
				Amount:          floatPtr(2),
				MeasureText:     "",
			},
		},
		{
			name: "VerbatimQuantityCasing",
			in:   "2 Cups flour",
			want: Parsed{
				Label:           "Flour",
				NormalizedLabel: "flour",
				QuantityText:    "2 Cups",
				Amount:          floatPtr(2),
				MeasureText:     "cup",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in)
			assertParsed(t, got, tc.want)
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		got := Parse(in)
		if got.Label != "" || got.NormalizedLabel != "" || got.QuantityText != "" ||
			got.Amount != nil || got.MeasureText != "" {
			t.Errorf("Parse(%q) = %+v, want all-empty result", in, got)
		}
	}
}

func assertParsed(t *testing.T, got, want Parsed) {
	t.Helper()
	if got.Label != want.Label {
		t.Errorf("Label = %q, want %q", got.Label, want.Label)
	}
	if got.NormalizedLabel != want.NormalizedLabel {
		t.Errorf("NormalizedLabel = %q, want %q", got.NormalizedLabel, want.NormalizedLabel)
	}
	if got.QuantityText != want.QuantityText {
		t.Errorf("QuantityText = %q, want %q", got.QuantityText, want.QuantityText)
	}
	if got.MeasureText != want.MeasureText {
		t.Errorf("MeasureText = %q, want %q", got.MeasureText, want.MeasureText)
	}
	switch {
	case got.Amount == nil && want.Amount != nil:
		t.Errorf("Amount = nil, want %v", *want.Amount)
	case got.Amount != nil && want.Amount == nil:
		t.Errorf("Amount = %v, want nil", *got.Amount)
	case got.Amount != nil && want.Amount != nil:
		diff := *got.Amount - *want.Amount
		if diff < -1e-9 || diff > 1e-9 {
			t.Errorf("Amount = %v, want %v", *got.Amount, *want.Amount)
		}
	}
}
