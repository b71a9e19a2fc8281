package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"recipe-organizer/internal/app"
	"recipe-organizer/internal/clipper"
	"recipe-organizer/internal/config"
	"recipe-organizer/internal/database"
	"recipe-organizer/internal/ingredient"
	"recipe-organizer/internal/llm"
	"recipe-organizer/internal/metrics"
	"recipe-organizer/internal/recipe"
	"recipe-organizer/internal/shoppinglist"
	"recipe-organizer/internal/storage"
)

// localUser keys the shopping list for CLI usage, where there is no
// Telegram identity.
const localUser = "local"

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeRepo := recipe.NewRepository(db.SQL)
	listRepo := shoppinglist.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	recipeStore, err := storage.NewRecipeStore(cfg.DataPath)
	if err != nil {
		log.Fatalf("Failed to initialize recipe export store: %v", err)
	}

	var textGen llm.TextGenerator
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGen = geminiClient
	}
	recipeClipper := clipper.NewClipper(textGen)

	application := app.NewApp(
		recipeClipper,
		recipeStore,
		metricsStore,
		cfg,
		db,
		recipeRepo,
		listRepo,
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		runAdd(ctx, application, os.Args[2:])
	case "import":
		if len(os.Args) < 3 {
			log.Fatal("Usage: recipe-organizer import <url>")
		}
		rec, err := application.ImportRecipe(ctx, localUser, os.Args[2])
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported '%s' (%d ingredients).\n", rec.Title, len(rec.Ingredients))
	case "list":
		runList(ctx, application)
	case "done":
		if len(os.Args) < 3 {
			log.Fatal("Usage: recipe-organizer done <label>")
		}
		if err := application.CrossOff(ctx, localUser, strings.Join(os.Args[2:], " ")); err != nil {
			log.Fatalf("Cross-off failed: %v", err)
		}
	case "clear":
		if err := application.Clear(ctx, localUser); err != nil {
			log.Fatalf("Clear failed: %v", err)
		}
		fmt.Println("List cleared.")
	case "units":
		for _, opt := range ingredient.MeasureOptions() {
			fmt.Printf("%-12s %s\n", opt.Value, opt.Label)
		}
	case "export":
		exported, err := application.ExportRecipes(ctx)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Exported %d recipe(s) to %s.\n", exported, cfg.DataPath)
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runAdd takes ingredient lines from the arguments, or from stdin when
// none are given (one line per ingredient).
func runAdd(ctx context.Context, application *app.App, args []string) {
	var lines []string
	if len(args) > 0 {
		lines = []string{strings.Join(args, " ")}
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			log.Fatalf("Failed to read stdin: %v", err)
		}
	}

	added, err := application.AddLines(ctx, localUser, lines)
	if err != nil {
		log.Fatalf("Add failed: %v", err)
	}
	fmt.Printf("Added %d item(s).\n", added)
}

func runList(ctx context.Context, application *app.App) {
	lines, err := application.List(ctx, localUser)
	if err != nil {
		log.Fatalf("List failed: %v", err)
	}
	if len(lines) == 0 {
		fmt.Println("Shopping list is empty.")
		return
	}

	for _, line := range lines {
		mark := "[ ]"
		if line.CrossedOff {
			mark = "[x]"
		}
		fmt.Printf("%s %s (%s)", mark, line.Label, line.Quantity)
		if len(line.Sources) > 0 {
			fmt.Printf("  <- %s", strings.Join(line.Sources, ", "))
		}
		fmt.Println()
	}
}

func printUsage() {
	fmt.Println("Usage: recipe-organizer <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  add [line]         Add ingredient lines (reads stdin when no line is given)")
	fmt.Println("  import <url>       Clip a recipe from a URL and add its ingredients")
	fmt.Println("  list               Show the shopping list")
	fmt.Println("  done <label>       Cross an item off")
	fmt.Println("  clear              Empty the shopping list")
	fmt.Println("  units              Show the known measurement units")
	fmt.Println("  export             Write stored recipes to JSON files")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
