// Package ocr extracts text from images behind a single narrow interface,
// so the engine can be swapped or mocked without touching the matching
// logic that consumes its output.
package ocr

import (
	"context"
	"errors"
	"fmt"
)

// Engine extracts plain text from the image file at path.
type Engine interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

var (
	// ErrUnavailable means the engine cannot run at all, e.g. the
	// tesseract binary is missing or OCR is disabled.
	ErrUnavailable = errors.New("ocr engine unavailable")

	// ErrNoText means the engine ran but produced no usable text.
	ErrNoText = errors.New("no text extracted")
)

// Config selects and parameterizes an engine.
type Config struct {
	Engine       string // tesseract, gemini, remote or none
	TesseractCmd string
	GeminiAPIKey string
	GeminiModel  string
	RemoteURL    string
}

// NewEngine builds the configured engine. Unknown engine names are a
// configuration error; runtime extraction failures are reported per call
// and degrade gracefully instead.
func NewEngine(ctx context.Context, cfg Config) (Engine, error) {
	switch cfg.Engine {
	case "", "none":
		return Disabled{}, nil
	case "tesseract":
		return NewTesseract(cfg.TesseractCmd), nil
	case "gemini":
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "remote":
		return NewRemote(cfg.RemoteURL), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", cfg.Engine)
	}
}

// Disabled is the engine used when OCR is turned off.
type Disabled struct{}

func (Disabled) ExtractText(ctx context.Context, imagePath string) (string, error) {
	return "", ErrUnavailable
}
