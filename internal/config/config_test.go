package config

import (
	"os"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"CATALOG_PATH", "MATCH_THRESHOLD", "PORT", "LOG_LEVEL",
		"OCR_ENGINE", "TESSERACT_CMD", "GEMINI_API_KEY", "GEMINI_MODEL",
		"OCR_REMOTE_URL", "OCR_TIMEOUT_SECONDS", "MAX_IMAGE_WIDTH",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_ALLOW_USER_ID",
	}
	for _, key := range keys {
		// t.Setenv registers the restore, Unsetenv clears for this test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.CatalogPath != "" {
			t.Errorf("Expected empty CatalogPath, got %q", cfg.CatalogPath)
		}
		if cfg.MatchThreshold != 0.5 {
			t.Errorf("Expected threshold 0.5, got %v", cfg.MatchThreshold)
		}
		if cfg.Port != "5000" {
			t.Errorf("Expected port 5000, got %q", cfg.Port)
		}
		if cfg.OCR.Engine != "tesseract" {
			t.Errorf("Expected tesseract engine, got %q", cfg.OCR.Engine)
		}
		if cfg.OCR.TimeoutSeconds != 20 {
			t.Errorf("Expected 20s OCR timeout, got %d", cfg.OCR.TimeoutSeconds)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATALOG_PATH", "/tmp/catalog.json")
		t.Setenv("MATCH_THRESHOLD", "0.75")
		t.Setenv("PORT", "8080")
		t.Setenv("OCR_ENGINE", "remote")
		t.Setenv("OCR_REMOTE_URL", "http://ocr.test")
		t.Setenv("TELEGRAM_ALLOW_USER_ID", "42")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.CatalogPath != "/tmp/catalog.json" {
			t.Errorf("Expected CatalogPath override, got %q", cfg.CatalogPath)
		}
		if cfg.MatchThreshold != 0.75 {
			t.Errorf("Expected threshold 0.75, got %v", cfg.MatchThreshold)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected port 8080, got %q", cfg.Port)
		}
		if cfg.OCR.Engine != "remote" || cfg.OCR.RemoteURL != "http://ocr.test" {
			t.Errorf("Expected remote engine config, got %+v", cfg.OCR)
		}
		if cfg.Telegram.AllowUserID != 42 {
			t.Errorf("Expected allow user id 42, got %d", cfg.Telegram.AllowUserID)
		}
	})

	t.Run("invalid threshold", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MATCH_THRESHOLD", "1.5")

		if _, err := Load(); err == nil {
			t.Fatal("Expected an error for threshold > 1, got nil")
		}
	})

	t.Run("gemini engine requires key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OCR_ENGINE", "gemini")

		_, err := Load()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
		expectedError := "GEMINI_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("remote engine requires URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OCR_ENGINE", "remote")

		_, err := Load()
		if err == nil {
			t.Fatal("Expected an error for missing OCR_REMOTE_URL, got nil")
		}
		expectedError := "OCR_REMOTE_URL environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("unknown engine", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OCR_ENGINE", "sorcery")

		if _, err := Load(); err == nil {
			t.Fatal("Expected an error for an unknown OCR engine, got nil")
		}
	})
}

func TestValidateTelegram(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error from Load, got %v", err)
		}

		err = cfg.ValidateTelegram()
		if err == nil {
			t.Fatal("Expected an error for missing TELEGRAM_BOT_TOKEN, got nil")
		}
		expectedError := "TELEGRAM_BOT_TOKEN environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("token present", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error from Load, got %v", err)
		}
		if err := cfg.ValidateTelegram(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}
