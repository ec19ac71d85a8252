package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/songofhawk/Giga-Peach/internal/adapter/repo"
	"github.com/songofhawk/Giga-Peach/internal/domain"
	"github.com/songofhawk/Giga-Peach/internal/http/handlers"
	httpapi "github.com/songofhawk/Giga-Peach/internal/http/httpapi"
	"github.com/songofhawk/Giga-Peach/internal/infra"
	"github.com/songofhawk/Giga-Peach/internal/orchestrator"
	"github.com/songofhawk/Giga-Peach/internal/preset"
	provider "github.com/songofhawk/Giga-Peach/internal/providers/image"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	var (
		gallery  domain.GalleryStore
		presets  domain.PresetStore
		settings domain.SettingsStore
	)
	switch cfg.StoreDriver {
	case "memory":
		mem := repo.NewMemoryStore()
		gallery, presets, settings = mem, mem, mem
		logger.Warn().Msg("memory store selected, nothing will survive a restart")
	default:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		if err := repo.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare schema")
		}
		gallery = repo.NewGalleryRepository(pool)
		presets = repo.NewPresetRepository(pool)
		settings = repo.NewSettingsRepository(pool)
	}

	registry := preset.NewRegistry(presets, logger)
	if err := registry.Init(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize preset registry")
	}

	var gen provider.Generator
	switch cfg.Generator {
	case "synthetic":
		gen = provider.NewSyntheticGenerator()
		logger.Warn().Msg("synthetic generator selected, images are placeholders")
	default:
		gen = provider.NewGeminiGenerator(provider.GeminiOptions{
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Logger:  logger,
		})
	}

	orch := orchestrator.New(gallery, settings, gen, logger)
	if err := orch.RefreshGallery(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to load gallery")
	}

	app := handlers.NewApp(orch, registry, settings, logger)
	router := httpapi.NewRouter(app, cfg.CORSAllowedOrigins)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}

	// Let in-flight generations land before the pool closes.
	orch.Wait()
	logger.Info().Msg("server stopped")
}
