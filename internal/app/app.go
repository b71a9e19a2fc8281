package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"recipe-organizer/internal/clipper"
	"recipe-organizer/internal/config"
	"recipe-organizer/internal/database"
	"recipe-organizer/internal/ingredient"
	"recipe-organizer/internal/metrics"
	"recipe-organizer/internal/recipe"
	"recipe-organizer/internal/share"
	"recipe-organizer/internal/shoppinglist"
	"recipe-organizer/internal/storage"

	"github.com/google/uuid"
)

// App holds the application's dependencies.
type App struct {
	recipeClipper *clipper.Clipper
	recipeStore   *storage.RecipeStore
	metricsStore  *metrics.Store
	cfg           *config.Config

	db         *database.DB
	recipeRepo *recipe.Repository
	listRepo   *shoppinglist.Repository
}

// NewApp creates and initializes a new App instance.
func NewApp(
	recipeClipper *clipper.Clipper,
	recipeStore *storage.RecipeStore,
	metricsStore *metrics.Store,
	cfg *config.Config,
	db *database.DB,
	recipeRepo *recipe.Repository,
	listRepo *shoppinglist.Repository,
) *App {
	return &App{
		recipeClipper: recipeClipper,
		recipeStore:   recipeStore,
		metricsStore:  metricsStore,
		cfg:           cfg,
		db:            db,
		recipeRepo:    recipeRepo,
		listRepo:      listRepo,
	}
}

// AddLines parses free-text ingredient lines and merges them into the
// user's shopping list. Returns the number of lines that produced an item.
func (a *App) AddLines(ctx context.Context, userID string, lines []string) (int, error) {
	start := time.Now()

	sourceLines := make([]shoppinglist.SourceLine, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sourceLines = append(sourceLines, shoppinglist.SourceLine{Raw: line})
	}

	items := shoppinglist.GroupEntries(sourceLines)
	if err := a.listRepo.AppendEntries(ctx, userID, items); err != nil {
		return 0, fmt.Errorf("failed to add lines: %w", err)
	}

	parsed := 0
	for _, item := range items {
		parsed += len(item.Entries)
	}
	a.recordImport("manual", len(sourceLines), parsed, items, start)
	return parsed, nil
}

// ImportRecipe clips a recipe from a URL, stores it, and adds its
// ingredients to the user's shopping list.
func (a *App) ImportRecipe(ctx context.Context, userID, url string) (*recipe.Recipe, error) {
	start := time.Now()

	clip, err := a.recipeClipper.ClipURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to clip recipe: %w", err)
	}

	rec := recipe.Recipe{
		ID:          uuid.NewString(),
		Title:       clip.Title,
		SourceURL:   clip.SourceURL,
		Ingredients: clip.Ingredients,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := a.recipeRepo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	sourceLines := make([]shoppinglist.SourceLine, 0, len(rec.Ingredients))
	for _, line := range rec.Ingredients {
		sourceLines = append(sourceLines, shoppinglist.SourceLine{
			Raw:         line,
			RecipeID:    rec.ID,
			RecipeTitle: rec.Title,
		})
	}
	items := shoppinglist.GroupEntries(sourceLines)
	if err := a.listRepo.AppendEntries(ctx, userID, items); err != nil {
		return nil, fmt.Errorf("failed to add recipe ingredients: %w", err)
	}

	parsed := 0
	for _, item := range items {
		parsed += len(item.Entries)
	}
	a.recordImport("clipper", len(sourceLines), parsed, items, start)
	return &rec, nil
}

// List renders the user's shopping list for display.
func (a *App) List(ctx context.Context, userID string) ([]shoppinglist.Line, error) {
	items, err := a.listRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}

	lines := make([]shoppinglist.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, shoppinglist.RenderLine(item))
	}
	return lines, nil
}

// CrossOff marks an item as done. The label may be in any casing or
// plural form; it is normalized before lookup.
func (a *App) CrossOff(ctx context.Context, userID, label string) error {
	return a.listRepo.CrossOff(ctx, userID, ingredient.NormalizeLabel(label))
}

// Uncross clears an item's crossed-off mark.
func (a *App) Uncross(ctx context.Context, userID, label string) error {
	return a.listRepo.Uncross(ctx, userID, ingredient.NormalizeLabel(label))
}

// Remove deletes an item from the user's list.
func (a *App) Remove(ctx context.Context, userID, label string) error {
	return a.listRepo.Delete(ctx, userID, ingredient.NormalizeLabel(label))
}

// Clear empties the user's list.
func (a *App) Clear(ctx context.Context, userID string) error {
	return a.listRepo.Clear(ctx, userID)
}

// SuggestMerges reports near-duplicate item pairs on the user's list.
func (a *App) SuggestMerges(ctx context.Context, userID string) ([]shoppinglist.MergeSuggestion, error) {
	items, err := a.listRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}
	return shoppinglist.SuggestMerges(items), nil
}

// ExportRecipes writes every stored recipe to the file-based export store.
func (a *App) ExportRecipes(ctx context.Context) (int, error) {
	recipes, err := a.recipeRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recipes: %w", err)
	}

	exported := 0
	for _, rec := range recipes {
		if err := a.recipeStore.Save(rec); err != nil {
			log.Printf("Failed to export recipe '%s': %v", rec.Title, err)
			continue
		}
		exported++
	}
	return exported, nil
}

// ShareLink issues a signed token granting read access to the user's list.
func (a *App) ShareLink(userID string, ttl time.Duration) (string, error) {
	if a.cfg.ShareTokenSecret == "" {
		return "", fmt.Errorf("sharing is not configured")
	}
	return share.NewListToken(a.cfg.ShareTokenSecret, userID, ttl)
}

// ListShared resolves a share token and renders that user's list.
func (a *App) ListShared(ctx context.Context, token string) ([]shoppinglist.Line, error) {
	if a.cfg.ShareTokenSecret == "" {
		return nil, fmt.Errorf("sharing is not configured")
	}
	userID, err := share.ParseListToken(a.cfg.ShareTokenSecret, token)
	if err != nil {
		return nil, err
	}
	return a.List(ctx, userID)
}

func (a *App) recordImport(source string, total, parsed int, items []shoppinglist.Item, start time.Time) {
	if a.metricsStore == nil {
		return
	}

	unknownUnits := 0
	for _, item := range items {
		for _, e := range item.Entries {
			if e.MeasureText == "" {
				continue
			}
			if _, ok := ingredient.CanonicalOf(e.MeasureText); !ok {
				unknownUnits++
			}
		}
	}

	if err := a.metricsStore.Record(metrics.ImportMetric{
		Source:       source,
		LinesTotal:   total,
		LinesParsed:  parsed,
		UnknownUnits: unknownUnits,
		LatencyMS:    time.Since(start).Milliseconds(),
	}); err != nil {
		log.Printf("Warning: failed to record import metric: %v", err)
	}
}
