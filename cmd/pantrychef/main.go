package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pantrychef/internal/app"
	"pantrychef/internal/catalog"
	"pantrychef/internal/cli"
	"pantrychef/internal/clip"
	"pantrychef/internal/config"
	"pantrychef/internal/diag"
	"pantrychef/internal/logger"
	"pantrychef/internal/ocr"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		logger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	ctx := context.Background()

	if len(os.Args) < 2 {
		session := cli.NewSession(newApp(ctx, cfg, cfg.CatalogPath, true), os.Stdin, os.Stdout)
		if err := session.Run(ctx); err != nil {
			logger.Fatal("session failed", zap.Error(err))
		}
		return
	}

	switch os.Args[1] {
	case "suggest":
		suggestCmd := flag.NewFlagSet("suggest", flag.ExitOnError)
		ingredients := suggestCmd.String("ingredients", "", "Comma separated ingredients you have")
		image := suggestCmd.String("image", "", "Path to a pantry photo to scan")
		catalogPath := suggestCmd.String("catalog", cfg.CatalogPath, "Recipe catalog JSON file (default: built-in)")
		suggestCmd.Parse(os.Args[2:])
		runSuggest(ctx, cfg, *catalogPath, *ingredients, *image, false)
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		ingredients := planCmd.String("ingredients", "", "Comma separated ingredients you have")
		catalogPath := planCmd.String("catalog", cfg.CatalogPath, "Recipe catalog JSON file (default: built-in)")
		planCmd.Parse(os.Args[2:])
		runSuggest(ctx, cfg, *catalogPath, *ingredients, "", true)
	case "clip":
		clipCmd := flag.NewFlagSet("clip", flag.ExitOnError)
		url := clipCmd.String("url", "", "Recipe page URL to import")
		catalogPath := clipCmd.String("catalog", cfg.CatalogPath, "Catalog JSON file to append to")
		clipCmd.Parse(os.Args[2:])
		runClip(ctx, *url, *catalogPath)
	case "doctor":
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			logger.Fatal("failed to load catalog", zap.Error(err))
		}
		fmt.Print(diag.Collect(cfg, cat).String())
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// newApp wires catalog, OCR and matcher for one run. withOCR is false for
// text-only subcommands so they never pay engine startup.
func newApp(ctx context.Context, cfg *config.Config, catalogPath string, withOCR bool) *app.App {
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	var svc *ocr.Service
	if withOCR {
		engine, err := ocr.NewEngine(ctx, ocr.Config{
			Engine:       cfg.OCR.Engine,
			TesseractCmd: cfg.OCR.TesseractCmd,
			GeminiAPIKey: cfg.OCR.GeminiAPIKey,
			GeminiModel:  cfg.OCR.GeminiModel,
			RemoteURL:    cfg.OCR.RemoteURL,
		})
		if err != nil {
			logger.Fatal("failed to initialize OCR engine", zap.Error(err))
		}
		svc = ocr.NewService(engine, cfg.OCRTimeout(), cfg.OCR.MaxImageWidth)
	}

	return app.New(cat, svc, cfg.MatchThreshold)
}

func runSuggest(ctx context.Context, cfg *config.Config, catalogPath, ingredients, imagePath string, planOnly bool) {
	application := newApp(ctx, cfg, catalogPath, imagePath != "")

	req := app.SuggestRequest{Text: ingredients}
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			logger.Fatal("failed to read image", zap.String("path", imagePath), zap.Error(err))
		}
		req.Image = data
		req.ImageName = imagePath
	}

	resp, err := application.Suggest(ctx, req)
	if err != nil {
		fmt.Println("Please pass at least one ingredient, e.g. -ingredients \"pasta, tomato\".")
		os.Exit(1)
	}

	for _, w := range resp.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	if planOnly {
		week, err := application.PlanWeek(resp, nil)
		if err != nil {
			logger.Fatal("failed to plan week", zap.Error(err))
		}
		if week.Assigned() == 0 {
			fmt.Println("Nothing is fully cookable yet; add more ingredients and try again.")
			os.Exit(1)
		}
		cli.PrintWeek(os.Stdout, week)
		return
	}

	printReport(resp, application)
}

func printReport(resp *app.SuggestResponse, application *app.App) {
	fmt.Printf("You have: %s\n", joinOr(resp.Available, "nothing recognizable"))
	fmt.Println("\nRecipe Suggestions:")

	for _, r := range resp.Results {
		status := "Ready to cook"
		if !r.Makeable() {
			status = fmt.Sprintf("Missing %d", len(r.Missing))
		}
		fmt.Printf(" %s [%d/%d] %s\n", r.Recipe.Name, r.Matched, r.Required, status)
	}

	if list, err := application.ShoppingList(resp, nil); err == nil && len(list) > 0 {
		fmt.Println("\nShopping list:")
		for _, item := range list {
			fmt.Printf(" - %s\n", item)
		}
	}
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func runClip(ctx context.Context, url, catalogPath string) {
	if url == "" {
		fmt.Println("clip requires -url, e.g. clip -url https://example.com/best-pasta")
		os.Exit(1)
	}
	if catalogPath == "" {
		fmt.Println("clip requires -catalog (or CATALOG_PATH): the built-in catalog is read-only.")
		os.Exit(1)
	}

	recipe, err := clip.New().Clip(ctx, url)
	if err != nil {
		logger.Fatal("failed to clip recipe", zap.String("url", url), zap.Error(err))
	}

	recipes := []catalog.Recipe{recipe}
	if existing, err := catalog.Load(catalogPath); err == nil {
		recipes = append(existing.Recipes(), recipe)
	}

	if err := catalog.Save(catalogPath, recipes); err != nil {
		logger.Fatal("failed to save catalog", zap.Error(err))
	}

	fmt.Printf("Saved %q (%d ingredients) to %s\n", recipe.Name, len(recipe.Ingredients), catalogPath)
}

func printUsage() {
	fmt.Println("Usage: pantrychef [command] [arguments]")
	fmt.Println("\nWithout a command, pantrychef starts an interactive session.")
	fmt.Println("\nCommands:")
	fmt.Println("  suggest    Rank recipes against the ingredients you have")
	fmt.Println("  plan       Build a 7-day plan of the recipes you can cook")
	fmt.Println("  clip       Import a recipe from a web page into the catalog")
	fmt.Println("  doctor     Print an environment report")
}
