package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"recipe-organizer/internal/recipe"
)

// RecipeStore provides file-based JSON exports of recipes, one file per
// recipe ID. Exports are a plain-text backup alongside the database.
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore and ensures the base directory exists.
func NewRecipeStore(basePath string) (*RecipeStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &RecipeStore{basePath: basePath}, nil
}

func (s *RecipeStore) path(recipeID string) string {
	return filepath.Join(s.basePath, recipeID+".json")
}

// Save writes a recipe to its export file.
func (s *RecipeStore) Save(rec recipe.Recipe) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := os.WriteFile(s.path(rec.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load reads a recipe back from its export file.
func (s *RecipeStore) Load(recipeID string) (*recipe.Recipe, error) {
	data, err := os.ReadFile(s.path(recipeID))
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var rec recipe.Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &rec, nil
}

// Exists checks whether an export file exists for the recipe.
func (s *RecipeStore) Exists(recipeID string) bool {
	_, err := os.Stat(s.path(recipeID))
	return !os.IsNotExist(err)
}
