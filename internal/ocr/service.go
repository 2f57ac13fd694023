package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"pantrychef/internal/logger"
)

// Service runs an Engine over uploaded image bytes. It owns the temp file,
// the downscaling of oversized uploads and the extraction timeout, so
// callers only ever see text or an error they can degrade on.
type Service struct {
	engine   Engine
	timeout  time.Duration
	maxWidth uint
}

// NewService wraps an engine. timeout <= 0 falls back to 20s; maxWidth <= 0
// disables downscaling.
func NewService(engine Engine, timeout time.Duration, maxWidth int) *Service {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	s := &Service{engine: engine, timeout: timeout}
	if maxWidth > 0 {
		s.maxWidth = uint(maxWidth)
	}
	return s
}

// ExtractText writes the upload to a temp file and runs the engine under
// the service timeout. It returns ErrNoText when nothing usable came back
// (including timeouts) and ErrUnavailable when the engine cannot run.
func (s *Service) ExtractText(ctx context.Context, imageData []byte, filename string) (string, error) {
	if len(imageData) == 0 {
		return "", ErrNoText
	}

	imageData = s.downscale(imageData)

	tmpFile, err := os.CreateTemp("", "pantrychef-*"+safeExt(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(imageData); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	tmpFile.Close()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.engine.ExtractText(ctx, tmpFile.Name())
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: engine timed out after %s", ErrNoText, s.timeout)
		}
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// downscale re-encodes images wider than maxWidth. Undecodable data passes
// through untouched and is left for the engine to reject.
func (s *Service) downscale(imageData []byte) []byte {
	if s.maxWidth == 0 {
		return imageData
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return imageData
	}
	if uint(img.Bounds().Dx()) <= s.maxWidth {
		return imageData
	}

	img = resize.Resize(s.maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, nil)
	}
	if err != nil {
		logger.Warn("Failed to re-encode downscaled image", zap.Error(err))
		return imageData
	}
	return buf.Bytes()
}

func safeExt(filename string) string {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
