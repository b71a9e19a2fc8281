package storage

import (
	"os"
	"path/filepath"
	"testing"

	"recipe-organizer/internal/recipe"
)

func TestRecipeStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewRecipeStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create RecipeStore: %v", err)
	}

	rec := recipe.Recipe{
		ID:           "test-recipe-123",
		Title:        "Test Recipe",
		Ingredients:  []string{"1 cup of testing"},
		Instructions: "Write a test.",
		Tags:         []string{"go", "test"},
	}

	t.Run("CheckExists-False", func(t *testing.T) {
		if store.Exists(rec.ID) {
			t.Errorf("Expected recipe '%s' to not exist, but it does", rec.ID)
		}
	})

	t.Run("Save", func(t *testing.T) {
		if err := store.Save(rec); err != nil {
			t.Fatalf("Failed to save recipe: %v", err)
		}

		filePath := filepath.Join(tempDir, rec.ID+".json")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", filePath)
		}
	})

	t.Run("CheckExists-True", func(t *testing.T) {
		if !store.Exists(rec.ID) {
			t.Errorf("Expected recipe '%s' to exist, but it doesn't", rec.ID)
		}
	})

	t.Run("Load", func(t *testing.T) {
		loadedRec, err := store.Load(rec.ID)
		if err != nil {
			t.Fatalf("Failed to load recipe: %v", err)
		}

		if loadedRec.Title != rec.Title {
			t.Errorf("Expected title '%s', got '%s'", rec.Title, loadedRec.Title)
		}
		if len(loadedRec.Ingredients) != 1 {
			t.Errorf("Expected 1 ingredient, got %d", len(loadedRec.Ingredients))
		}
		if loadedRec.Ingredients[0] != "1 cup of testing" {
			t.Errorf("Expected ingredient '1 cup of testing', got '%s'", loadedRec.Ingredients[0])
		}
	})

	t.Run("Load-NotFound", func(t *testing.T) {
		_, err := store.Load("non-existent-recipe")
		if err == nil {
			t.Fatal("Expected an error for loading non-existent recipe, got nil")
		}
	})
}
