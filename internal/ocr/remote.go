package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// Remote posts images to an external OCR HTTP service and reads the
// recognized text from its JSON response.
type Remote struct {
	url    string
	client *resty.Client
}

// NewRemote creates the HTTP-backed engine for the given endpoint.
func NewRemote(url string) *Remote {
	return &Remote{
		url:    url,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

type remoteRequest struct {
	Image string `json:"image"` // base64-encoded bytes
}

type remoteResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (r *Remote) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if r.url == "" {
		return "", fmt.Errorf("%w: OCR_REMOTE_URL not set", ErrUnavailable)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	var out remoteResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(remoteRequest{Image: base64.StdEncoding.EncodeToString(data)}).
		SetResult(&out).
		Post(r.url)
	if err != nil {
		return "", fmt.Errorf("ocr request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ocr service returned status %d", resp.StatusCode())
	}
	if out.Error != "" {
		return "", fmt.Errorf("ocr service error: %s", out.Error)
	}
	return out.Text, nil
}
