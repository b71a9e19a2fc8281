package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-organizer/internal/llm"

	"github.com/PuerkitoBio/goquery"
)

// Clip is a recipe extracted from a web page.
type Clip struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	SourceURL   string   `json:"source_url"`
}

// Clipper fetches a recipe page and extracts its title and ingredient
// lines. Structured markup (JSON-LD, then microdata, then common CSS
// conventions) is tried first; the LLM fallback only runs when a text
// generator was provided and structure yields nothing.
type Clipper struct {
	httpClient *http.Client
	textGen    llm.TextGenerator
}

// NewClipper creates a new Clipper. textGen may be nil to disable the
// LLM fallback.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		textGen:    textGen,
	}
}

// ClipURL fetches the URL and extracts the recipe.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*Clip, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	clip := extractStructured(doc)
	if clip == nil && c.textGen != nil {
		clip, err = c.extractWithLLM(ctx, doc)
		if err != nil {
			return nil, err
		}
	}
	if clip == nil || len(clip.Ingredients) == 0 {
		return nil, fmt.Errorf("no recipe found at %s", url)
	}

	if clip.Title == "" {
		clip.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	clip.SourceURL = url
	return clip, nil
}

func (c *Clipper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// extractStructured walks the document's structured markup in order of
// reliability and returns the first hit.
func extractStructured(doc *goquery.Document) *Clip {
	if clip := extractJSONLD(doc); clip != nil {
		return clip
	}
	if clip := extractMicrodata(doc); clip != nil {
		return clip
	}
	return extractHeuristic(doc)
}

// jsonLDRecipe matches the subset of schema.org/Recipe the clipper needs.
type jsonLDRecipe struct {
	Type             any               `json:"@type"`
	Name             string            `json:"name"`
	RecipeIngredient []string          `json:"recipeIngredient"`
	Ingredients      []string          `json:"ingredients"`
	Graph            []json.RawMessage `json:"@graph"`
}

func extractJSONLD(doc *goquery.Document) *Clip {
	var clip *Clip
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		clip = parseJSONLD([]byte(s.Text()))
		return clip == nil
	})
	return clip
}

func parseJSONLD(data []byte) *Clip {
	var node jsonLDRecipe
	if err := json.Unmarshal(data, &node); err != nil {
		// Some sites wrap the document in a top-level array.
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil
		}
		for _, raw := range list {
			if clip := parseJSONLD(raw); clip != nil {
				return clip
			}
		}
		return nil
	}

	if isRecipeType(node.Type) {
		ingredients := node.RecipeIngredient
		if len(ingredients) == 0 {
			ingredients = node.Ingredients
		}
		if len(ingredients) > 0 {
			return &Clip{Title: node.Name, Ingredients: cleanLines(ingredients)}
		}
	}

	for _, raw := range node.Graph {
		if clip := parseJSONLD(raw); clip != nil {
			return clip
		}
	}
	return nil
}

// isRecipeType accepts "@type": "Recipe" as a string or inside a list.
func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func extractMicrodata(doc *goquery.Document) *Clip {
	var ingredients []string
	doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		ingredients = append(ingredients, s.Text())
	})
	ingredients = cleanLines(ingredients)
	if len(ingredients) == 0 {
		return nil
	}

	title := strings.TrimSpace(doc.Find(`[itemprop="name"]`).First().Text())
	return &Clip{Title: title, Ingredients: ingredients}
}

func extractHeuristic(doc *goquery.Document) *Clip {
	var ingredients []string
	doc.Find(`[class*="ingredient"] li`).Each(func(_ int, s *goquery.Selection) {
		ingredients = append(ingredients, s.Text())
	})
	ingredients = cleanLines(ingredients)
	if len(ingredients) == 0 {
		return nil
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	return &Clip{Title: title, Ingredients: ingredients}
}

func (c *Clipper) extractWithLLM(ctx context.Context, doc *goquery.Document) (*Clip, error) {
	// Strip noise before sending page text to the model.
	doc.Find("script, style, nav, footer, iframe, .ads, #ads").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
	content := doc.Find("body").Text()

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe from the following page text.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["quantity + name", "quantity + name", ...]
}

Return ONLY the raw JSON string. Do not wrap the response in markdown code blocks.

Page Text:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var clip Clip
	if err := json.Unmarshal([]byte(resp), &clip); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp)
	}
	clip.Ingredients = cleanLines(clip.Ingredients)
	return &clip, nil
}

func cleanLines(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return cleaned
}
