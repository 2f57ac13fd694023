package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pantrychef/internal/app"
	"pantrychef/internal/catalog"
	"pantrychef/internal/config"
	"pantrychef/internal/logger"
	"pantrychef/internal/ocr"
	"pantrychef/internal/web"
)

func main() {
	_ = godotenv.Load()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		logger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	if os.Getenv("ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 2. Load the recipe catalog
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	// 3. Initialize the OCR engine
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
	if closer, ok := engine.(io.Closer); ok {
		defer closer.Close()
	}

	// 4. Wire the app and router
	svc := ocr.NewService(engine, cfg.OCRTimeout(), cfg.OCR.MaxImageWidth)
	application := app.New(cat, svc, cfg.MatchThreshold)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           web.NewRouter(application),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 5. Start the server with graceful shutdown
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.Int("recipes", cat.Len()),
			zap.String("ocr_engine", cfg.OCR.Engine))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
