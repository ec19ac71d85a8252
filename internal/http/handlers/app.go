package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/songofhawk/Giga-Peach/internal/domain"
	"github.com/songofhawk/Giga-Peach/internal/orchestrator"
	"github.com/songofhawk/Giga-Peach/internal/preset"
)

// App bundles the handler dependencies.
type App struct {
	Orch     *orchestrator.Orchestrator
	Presets  *preset.Registry
	Settings domain.SettingsStore
	Logger   zerolog.Logger
}

// NewApp constructs the handler container.
func NewApp(orch *orchestrator.Orchestrator, presets *preset.Registry, settings domain.SettingsStore, logger zerolog.Logger) *App {
	return &App{Orch: orch, Presets: presets, Settings: settings, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"error": slug, "message": message})
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
