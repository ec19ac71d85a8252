package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

// ListPresets returns the merged preset set, sentinel first.
func (a *App) ListPresets(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"presets": a.Presets.List()})
}

// SavePreset creates or updates a style preset.
func (a *App) SavePreset(w http.ResponseWriter, r *http.Request) {
	var preset domain.StylePreset
	if err := json.NewDecoder(r.Body).Decode(&preset); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if preset.ID == "" || preset.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id and name are required")
		return
	}
	if err := a.Presets.Save(r.Context(), preset); err != nil {
		if errors.Is(err, domain.ErrSentinelPreset) {
			a.error(w, http.StatusBadRequest, "bad_request", "the none preset cannot be edited")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to save preset")
		return
	}
	a.json(w, http.StatusOK, preset)
}

// DeletePreset removes a style preset. The sentinel is protected.
func (a *App) DeletePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "preset_id")
	if err := a.Presets.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrSentinelPreset) {
			a.error(w, http.StatusBadRequest, "bad_request", "the none preset cannot be deleted")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete preset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
