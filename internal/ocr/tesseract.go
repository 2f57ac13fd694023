package ocr

import (
	"context"
	"fmt"
	"os/exec"
)

// Tesseract shells out to the tesseract binary and reads the recognized
// text from stdout.
type Tesseract struct {
	Cmd string
}

// NewTesseract creates the exec-based engine. cmd defaults to "tesseract".
func NewTesseract(cmd string) *Tesseract {
	if cmd == "" {
		cmd = "tesseract"
	}
	return &Tesseract{Cmd: cmd}
}

func (t *Tesseract) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if _, err := exec.LookPath(t.Cmd); err != nil {
		return "", fmt.Errorf("%w: %s not found in PATH", ErrUnavailable, t.Cmd)
	}

	out, err := exec.CommandContext(ctx, t.Cmd, imagePath, "stdout").Output()
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w", err)
	}
	return string(out), nil
}
