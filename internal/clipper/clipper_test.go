package clipper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type MockTextGenerator struct {
	Response    string
	ShouldError bool
	Called      bool
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.Called = true
	if m.ShouldError {
		return "", fmt.Errorf("mock ai error")
	}
	return m.Response, nil
}

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClipURL_JSONLD(t *testing.T) {
	ts := serve(t, `
	<html><head>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "Recipe",
		"name": "Tomato Soup",
		"recipeIngredient": ["4 tomatoes", "  1   cup of stock  ", ""]
	}
	</script>
	</head><body><h1>Ignored</h1></body></html>`)

	gen := &MockTextGenerator{}
	c := NewClipper(gen)
	clip, err := c.ClipURL(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if clip.Title != "Tomato Soup" {
		t.Errorf("Expected title 'Tomato Soup', got %q", clip.Title)
	}
	if len(clip.Ingredients) != 2 {
		t.Fatalf("Expected 2 ingredients, got %d: %v", len(clip.Ingredients), clip.Ingredients)
	}
	if clip.Ingredients[1] != "1 cup of stock" {
		t.Errorf("Expected collapsed whitespace, got %q", clip.Ingredients[1])
	}
	if clip.SourceURL != ts.URL {
		t.Errorf("Expected source URL %q, got %q", ts.URL, clip.SourceURL)
	}
	if gen.Called {
		t.Error("Expected structured extraction to skip the LLM")
	}
}

func TestClipURL_JSONLDGraph(t *testing.T) {
	ts := serve(t, `
	<html><head>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebSite", "name": "Some Blog"},
			{"@type": ["Recipe", "Thing"], "name": "Pancakes", "recipeIngredient": ["2 cups flour", "1 egg"]}
		]
	}
	</script>
	</head><body></body></html>`)

	c := NewClipper(nil)
	clip, err := c.ClipURL(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if clip.Title != "Pancakes" || len(clip.Ingredients) != 2 {
		t.Errorf("Unexpected clip: %+v", clip)
	}
}

func TestClipURL_Microdata(t *testing.T) {
	ts := serve(t, `
	<html><body itemscope itemtype="https://schema.org/Recipe">
		<h2 itemprop="name">Omelette</h2>
		<ul>
			<li itemprop="recipeIngredient">3 eggs</li>
			<li itemprop="recipeIngredient">1 tbsp butter</li>
		</ul>
	</body></html>`)

	c := NewClipper(nil)
	clip, err := c.ClipURL(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if clip.Title != "Omelette" {
		t.Errorf("Expected title 'Omelette', got %q", clip.Title)
	}
	if len(clip.Ingredients) != 2 || clip.Ingredients[0] != "3 eggs" {
		t.Errorf("Unexpected ingredients: %v", clip.Ingredients)
	}
}

func TestClipURL_HeuristicFallback(t *testing.T) {
	ts := serve(t, `
	<html><body>
		<h1>Grandma's Salad</h1>
		<div class="recipe-ingredients">
			<ul>
				<li>2 cucumbers</li>
				<li>1 bunch dill</li>
			</ul>
		</div>
	</body></html>`)

	c := NewClipper(nil)
	clip, err := c.ClipURL(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if clip.Title != "Grandma's Salad" {
		t.Errorf("Expected h1 title, got %q", clip.Title)
	}
	if len(clip.Ingredients) != 2 {
		t.Errorf("Unexpected ingredients: %v", clip.Ingredients)
	}
}

func TestClipURL_LLMFallback(t *testing.T) {
	ts := serve(t, `
	<html><head><title>Plain Page</title></head><body>
		<script>tracking()</script>
		<p>Combine 2 cups flour with 1 egg.</p>
	</body></html>`)

	gen := &MockTextGenerator{
		Response: `{"title": "Simple Dough", "ingredients": ["2 cups flour", "1 egg"]}`,
	}
	c := NewClipper(gen)
	clip, err := c.ClipURL(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !gen.Called {
		t.Fatal("Expected the LLM fallback to run")
	}
	if clip.Title != "Simple Dough" || len(clip.Ingredients) != 2 {
		t.Errorf("Unexpected clip: %+v", clip)
	}
}

func TestClipURL_NoRecipeWithoutLLM(t *testing.T) {
	ts := serve(t, `<html><body><p>Nothing to see here.</p></body></html>`)

	c := NewClipper(nil)
	if _, err := c.ClipURL(context.Background(), ts.URL); err == nil {
		t.Fatal("Expected an error when no recipe is found, got nil")
	}
}

func TestClipURL_LLMError(t *testing.T) {
	ts := serve(t, `<html><body><p>Nothing structured.</p></body></html>`)

	c := NewClipper(&MockTextGenerator{ShouldError: true})
	if _, err := c.ClipURL(context.Background(), ts.URL); err == nil {
		t.Fatal("Expected an error from the LLM fallback, got nil")
	}
}

func TestClipURL_BadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClipper(nil)
	if _, err := c.ClipURL(context.Background(), ts.URL); err == nil {
		t.Fatal("Expected an error for a 404 response, got nil")
	}
}
