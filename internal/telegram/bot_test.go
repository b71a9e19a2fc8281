package telegram

import (
	"strings"
	"testing"

	"recipe-organizer/internal/ingredient"
	"recipe-organizer/internal/metrics"
	"recipe-organizer/internal/shoppinglist"
)

func TestFormatListMarkdown(t *testing.T) {
	lines := []shoppinglist.Line{
		{Label: "Flour", Quantity: "3 cups", Sources: []string{"Bread", "Pancakes"}},
		{Label: "Eggs", Quantity: "4", CrossedOff: true},
		{Label: "Butter", Quantity: "As listed + 1 stick"},
	}

	out := formatListMarkdown(lines)

	if !strings.Contains(out, "🛒 *Shopping List*") {
		t.Error("Missing list header")
	}
	if !strings.Contains(out, "• *Flour* (3 cups)") {
		t.Error("Missing flour line")
	}
	if !strings.Contains(out, "_Bread, Pancakes_") {
		t.Error("Missing source attribution")
	}
	if !strings.Contains(out, "~Eggs~") {
		t.Error("Expected crossed-off item to use strikethrough")
	}
	if !strings.Contains(out, "(As listed + 1 stick)") {
		t.Error("Missing fallback quantity line")
	}
}

func TestFormatListMarkdown_Empty(t *testing.T) {
	out := formatListMarkdown(nil)
	if !strings.Contains(out, "_Empty") {
		t.Errorf("Expected empty-list hint, got %q", out)
	}
}

func TestFormatUnitsMarkdown(t *testing.T) {
	out := formatUnitsMarkdown(ingredient.MeasureOptions())
	if !strings.Contains(out, "📏 *Known Units*") {
		t.Error("Missing units header")
	}
	if !strings.Contains(out, "• cup (cups)") {
		t.Error("Missing cup entry")
	}
	if !strings.Contains(out, "• teaspoon (teaspoons)") {
		t.Error("Missing teaspoon entry")
	}
}

func TestFormatMetricsMarkdown(t *testing.T) {
	usage := []metrics.DailyUsage{
		{Date: "2026-08-20", Imports: 3, LinesTotal: 20, LinesParsed: 18, UnknownUnits: 2},
	}
	health := metrics.SysHealth{AllocMB: 12, SysMB: 30, Goroutines: 8, DataDirSize: "1.2 MB"}

	out := formatMetricsMarkdown(usage, health)

	if !strings.Contains(out, "*2026-08-20*: 3 imports, 18/20 lines parsed, 2 unknown units") {
		t.Errorf("Missing usage line in:\n%s", out)
	}
	if !strings.Contains(out, "RAM: 12MB (Alloc) / 30MB (Sys)") {
		t.Error("Missing RAM line")
	}
	if !strings.Contains(out, "Disk Data: 1.2 MB") {
		t.Error("Missing disk line")
	}
}

func TestFormatMetricsMarkdown_NoData(t *testing.T) {
	out := formatMetricsMarkdown(nil, metrics.SysHealth{})
	if !strings.Contains(out, "_No data yet_") {
		t.Error("Expected no-data placeholder")
	}
}
