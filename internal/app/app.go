// Package app wires the matching, shopping and planning core behind a
// transport-independent request/response API. The CLI, the web form and
// the Telegram bot are thin callers of this package.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pantrychef/internal/catalog"
	"pantrychef/internal/ingredient"
	"pantrychef/internal/logger"
	"pantrychef/internal/match"
	"pantrychef/internal/ocr"
	"pantrychef/internal/planner"
	"pantrychef/internal/shopping"
)

// ErrNoIngredients is returned when a request carries neither parseable
// typed ingredients nor an image.
var ErrNoIngredients = errors.New("no ingredients provided")

// App holds the application's dependencies.
type App struct {
	cat       *catalog.Catalog
	ocrSvc    *ocr.Service
	threshold float64
}

// New creates the app core. ocrSvc may be nil for surfaces without image
// input; image uploads then degrade with a warning.
func New(cat *catalog.Catalog, ocrSvc *ocr.Service, threshold float64) *App {
	return &App{cat: cat, ocrSvc: ocrSvc, threshold: threshold}
}

// Catalog exposes the loaded catalog to the surfaces.
func (a *App) Catalog() *catalog.Catalog {
	return a.cat
}

// SuggestRequest is one ingredient query: free text, an image, or both.
type SuggestRequest struct {
	Text      string
	Image     []byte
	ImageName string
}

// SuggestResponse ranks every catalog recipe against the available set.
// Ready, Almost and Rest partition Results by the match threshold.
type SuggestResponse struct {
	Available []string
	Results   []match.Result
	Ready     []match.Result
	Almost    []match.Result
	Rest      []match.Result
	Warnings  []string
}

// Suggest resolves the available-ingredient set from the request and ranks
// the catalog against it. OCR trouble never fails the request; it degrades
// to an empty extraction plus a user-visible warning.
func (a *App) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	available := ingredient.NewSet(ingredient.SplitList(req.Text)...)

	var warnings []string
	if len(req.Image) > 0 {
		extracted, warning := a.scanImage(ctx, req.Image, req.ImageName)
		for name := range extracted {
			available[name] = struct{}{}
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	// Typed-only requests with nothing parseable are an input error the
	// surface should re-prompt on. A request with an image always
	// continues; the warning explains an empty result.
	if available.Len() == 0 && len(req.Image) == 0 {
		return nil, ErrNoIngredients
	}

	results := match.Match(a.cat, available)
	ready, almost, rest := match.Partition(results, a.threshold)

	logger.Debug("Suggest query",
		zap.Int("available", available.Len()),
		zap.Int("ready", len(ready)),
		zap.Int("almost", len(almost)),
	)

	return &SuggestResponse{
		Available: available.Sorted(),
		Results:   results,
		Ready:     ready,
		Almost:    almost,
		Rest:      rest,
		Warnings:  warnings,
	}, nil
}

// scanImage returns the catalog ingredients recognized in the image and a
// user-visible warning when extraction failed or found nothing.
func (a *App) scanImage(ctx context.Context, image []byte, filename string) (ingredient.Set, string) {
	if a.ocrSvc == nil {
		return nil, "image scanning is not configured; ignoring the uploaded image"
	}

	text, err := a.ocrSvc.ExtractText(ctx, image, filename)
	if err != nil {
		logger.Warn("OCR extraction failed", zap.Error(err))
		switch {
		case errors.Is(err, ocr.ErrUnavailable):
			return nil, "image scanning is unavailable; ignoring the uploaded image"
		case errors.Is(err, ocr.ErrNoText):
			return nil, "no ingredients detected in the image"
		default:
			return nil, "could not read the image; continuing without it"
		}
	}

	found := ingredient.ExtractKnown(text, a.cat.Vocabulary())
	if found.Len() == 0 {
		return nil, "no ingredients detected in the image"
	}
	return found, ""
}

// SelectByName resolves recipe names against the suggestions, preserving
// order and dropping duplicate selections. Unknown names are an error.
func (a *App) SelectByName(resp *SuggestResponse, names []string) ([]match.Result, error) {
	selected := make([]match.Result, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		key := ingredient.Canonical(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		found := false
		for _, res := range resp.Results {
			if ingredient.Canonical(res.Recipe.Name) == key {
				selected = append(selected, res)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown recipe %q", strings.TrimSpace(name))
		}
		seen[key] = struct{}{}
	}

	return selected, nil
}

// ShoppingList builds the missing-ingredient list for the named recipes.
// With no names it covers every suggested recipe that is missing
// something.
func (a *App) ShoppingList(resp *SuggestResponse, names []string) ([]string, error) {
	var selected []match.Result
	if len(names) == 0 {
		for _, res := range resp.Results {
			if !res.Makeable() {
				selected = append(selected, res)
			}
		}
	} else {
		var err error
		selected, err = a.SelectByName(resp, names)
		if err != nil {
			return nil, err
		}
	}
	return shopping.Build(selected), nil
}

// PlanWeek schedules the named recipes onto Monday..Sunday. With no names
// it plans the recipes that are ready to cook, in ranking order.
func (a *App) PlanWeek(resp *SuggestResponse, names []string) (planner.Week, error) {
	var selected []match.Result
	if len(names) == 0 {
		selected = resp.Ready
	} else {
		var err error
		selected, err = a.SelectByName(resp, names)
		if err != nil {
			return planner.Week{}, err
		}
	}

	recipes := make([]catalog.Recipe, len(selected))
	for i, res := range selected {
		recipes[i] = res.Recipe
	}
	return planner.PlanWeek(recipes), nil
}
