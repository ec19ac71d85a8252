package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

type settingsResponse struct {
	HasCredential    bool            `json:"hasCredential"`
	EndpointOverride string          `json:"endpointOverride,omitempty"`
	LastParams       json.RawMessage `json:"lastParams,omitempty"`
}

type settingsRequest struct {
	APIKey           *string `json:"apiKey,omitempty"`
	EndpointOverride *string `json:"endpointOverride,omitempty"`
}

// GetSettings reports credential presence (never the key itself), the
// endpoint override and the last-used generation parameters.
func (a *App) GetSettings(w http.ResponseWriter, r *http.Request) {
	key, err := a.Settings.Get(r.Context(), domain.SettingAPIKey)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load settings")
		return
	}
	endpoint, err := a.Settings.Get(r.Context(), domain.SettingEndpoint)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load settings")
		return
	}
	lastParams, err := a.Settings.Get(r.Context(), domain.SettingLastParams)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load settings")
		return
	}

	resp := settingsResponse{
		HasCredential:    strings.TrimSpace(key) != "",
		EndpointOverride: endpoint,
	}
	if lastParams != "" {
		resp.LastParams = json.RawMessage(lastParams)
	}
	a.json(w, http.StatusOK, resp)
}

// PutSettings updates the provided keys, leaving absent ones untouched.
func (a *App) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.APIKey != nil {
		if err := a.Settings.Set(r.Context(), domain.SettingAPIKey, strings.TrimSpace(*req.APIKey)); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to save settings")
			return
		}
	}
	if req.EndpointOverride != nil {
		if err := a.Settings.Set(r.Context(), domain.SettingEndpoint, strings.TrimSpace(*req.EndpointOverride)); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to save settings")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

type stagingRequest struct {
	Prompt          string   `json:"prompt"`
	ReferenceImages []string `json:"referenceImages"`
}

// PutStaging records the working prompt and reference images; a successful
// submission clears them.
func (a *App) PutStaging(w http.ResponseWriter, r *http.Request) {
	var req stagingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	a.Orch.SetStaging(req.Prompt, req.ReferenceImages)
	w.WriteHeader(http.StatusNoContent)
}

// GetStaging returns the current working prompt and reference images.
func (a *App) GetStaging(w http.ResponseWriter, r *http.Request) {
	prompt, refs := a.Orch.Staging()
	a.json(w, http.StatusOK, stagingRequest{Prompt: prompt, ReferenceImages: refs})
}
