// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration shared by the pantrychef binaries.
type Config struct {
	CatalogPath    string  `mapstructure:"catalog_path"`
	MatchThreshold float64 `mapstructure:"match_threshold"`
	Port           string  `mapstructure:"port"`
	LogLevel       string  `mapstructure:"log_level"`

	OCR      OCRConfig      `mapstructure:"ocr"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// OCRConfig selects and parameterizes the OCR engine.
type OCRConfig struct {
	Engine         string `mapstructure:"engine"`
	TesseractCmd   string `mapstructure:"tesseract_cmd"`
	GeminiAPIKey   string `mapstructure:"gemini_api_key"`
	GeminiModel    string `mapstructure:"gemini_model"`
	RemoteURL      string `mapstructure:"remote_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxImageWidth  int    `mapstructure:"max_image_width"`
}

// TelegramConfig is only required by the bot binary.
type TelegramConfig struct {
	BotToken    string `mapstructure:"bot_token"`
	AllowUserID int64  `mapstructure:"allow_user_id"`
}

// Load reads configuration from environment variables, applying defaults
// and validating the result. Call godotenv.Load first if a .env file
// should be honored.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog_path", "")
	v.SetDefault("match_threshold", 0.5)
	v.SetDefault("port", "5000")
	v.SetDefault("log_level", "info")

	v.SetDefault("ocr.engine", "tesseract")
	v.SetDefault("ocr.tesseract_cmd", "tesseract")
	v.SetDefault("ocr.gemini_model", "gemini-1.5-flash")
	v.SetDefault("ocr.timeout_seconds", 20)
	v.SetDefault("ocr.max_image_width", 1200)
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("catalog_path", "CATALOG_PATH")
	v.BindEnv("match_threshold", "MATCH_THRESHOLD")
	v.BindEnv("port", "PORT")
	v.BindEnv("log_level", "LOG_LEVEL")

	v.BindEnv("ocr.engine", "OCR_ENGINE")
	v.BindEnv("ocr.tesseract_cmd", "TESSERACT_CMD")
	v.BindEnv("ocr.gemini_api_key", "GEMINI_API_KEY")
	v.BindEnv("ocr.gemini_model", "GEMINI_MODEL")
	v.BindEnv("ocr.remote_url", "OCR_REMOTE_URL")
	v.BindEnv("ocr.timeout_seconds", "OCR_TIMEOUT_SECONDS")
	v.BindEnv("ocr.max_image_width", "MAX_IMAGE_WIDTH")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.allow_user_id", "TELEGRAM_ALLOW_USER_ID")
}

// Validate checks the keys every binary depends on.
func (c *Config) Validate() error {
	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be between 0 and 1, got %v", c.MatchThreshold)
	}

	switch c.OCR.Engine {
	case "", "none", "tesseract", "gemini", "remote":
	default:
		return fmt.Errorf("OCR_ENGINE must be one of none, tesseract, gemini, remote; got %q", c.OCR.Engine)
	}

	if c.OCR.Engine == "gemini" && c.OCR.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if c.OCR.Engine == "remote" && c.OCR.RemoteURL == "" {
		return fmt.Errorf("OCR_REMOTE_URL environment variable not set")
	}
	if c.OCR.TimeoutSeconds <= 0 {
		return fmt.Errorf("OCR_TIMEOUT_SECONDS must be positive, got %d", c.OCR.TimeoutSeconds)
	}

	return nil
}

// ValidateTelegram additionally checks the keys the bot binary needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	return nil
}

// OCRTimeout returns the per-extraction timeout as a duration.
func (c *Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCR.TimeoutSeconds) * time.Second
}
