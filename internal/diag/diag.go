// Package diag builds the doctor report printed by the CLI.
package diag

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"pantrychef/internal/catalog"
	"pantrychef/internal/config"
)

// Report is a point-in-time snapshot of the environment the tool runs in.
type Report struct {
	CatalogOrigin string
	CatalogSize   string
	Recipes       int
	Vocabulary    int
	OCREngine     string
	OCRStatus     string
	AllocMB       uint64
	SysMB         uint64
	Goroutines    int
}

// Collect gathers the report for the given config and loaded catalog.
func Collect(cfg *config.Config, cat *catalog.Catalog) Report {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r := Report{
		CatalogOrigin: "embedded",
		Recipes:       cat.Len(),
		Vocabulary:    len(cat.Vocabulary()),
		OCREngine:     cfg.OCR.Engine,
		OCRStatus:     ocrStatus(cfg),
		AllocMB:       m.Alloc / 1024 / 1024,
		SysMB:         m.Sys / 1024 / 1024,
		Goroutines:    runtime.NumGoroutine(),
	}

	if cfg.CatalogPath != "" {
		r.CatalogOrigin = cfg.CatalogPath
		if info, err := os.Stat(cfg.CatalogPath); err == nil {
			r.CatalogSize = formatBytes(info.Size())
		}
	}

	return r
}

func ocrStatus(cfg *config.Config) string {
	switch cfg.OCR.Engine {
	case "", "none":
		return "disabled"
	case "tesseract":
		cmd := cfg.OCR.TesseractCmd
		if cmd == "" {
			cmd = "tesseract"
		}
		if path, err := exec.LookPath(cmd); err == nil {
			return fmt.Sprintf("ok (%s)", path)
		}
		return fmt.Sprintf("unavailable (%s not found in PATH)", cmd)
	case "gemini":
		if cfg.OCR.GeminiAPIKey == "" {
			return "unavailable (GEMINI_API_KEY not set)"
		}
		return fmt.Sprintf("ok (model %s)", cfg.OCR.GeminiModel)
	case "remote":
		if cfg.OCR.RemoteURL == "" {
			return "unavailable (OCR_REMOTE_URL not set)"
		}
		return fmt.Sprintf("ok (%s)", cfg.OCR.RemoteURL)
	default:
		return fmt.Sprintf("unknown engine %q", cfg.OCR.Engine)
	}
}

// String renders the report as the doctor subcommand prints it.
func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("PantryChef doctor\n\n")

	sb.WriteString(fmt.Sprintf("Catalog:     %s", r.CatalogOrigin))
	if r.CatalogSize != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", r.CatalogSize))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Recipes:     %d\n", r.Recipes))
	sb.WriteString(fmt.Sprintf("Vocabulary:  %d ingredients\n", r.Vocabulary))
	sb.WriteString(fmt.Sprintf("OCR engine:  %s, %s\n", displayEngine(r.OCREngine), r.OCRStatus))
	sb.WriteString(fmt.Sprintf("Memory:      %dMB (Alloc) / %dMB (Sys)\n", r.AllocMB, r.SysMB))
	sb.WriteString(fmt.Sprintf("Goroutines:  %d\n", r.Goroutines))

	return sb.String()
}

func displayEngine(engine string) string {
	if engine == "" {
		return "none"
	}
	return engine
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
