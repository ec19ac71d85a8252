package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/songofhawk/Giga-Peach/internal/domain"
	"github.com/songofhawk/Giga-Peach/internal/orchestrator"
)

type submitBatchRequest struct {
	Prompt          string              `json:"prompt"`
	ReferenceImages []string            `json:"referenceImages"`
	Params          orchestrator.Params `json:"params"`
	StyleID         string              `json:"styleId"`
}

type batchResponse struct {
	Tasks []domain.GenerationTask `json:"tasks"`
}

// SubmitBatch expands one submission into tasks and dispatches them.
func (a *App) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req submitBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	for _, ratio := range req.Params.AspectRatios {
		if !ratio.Valid() {
			a.error(w, http.StatusBadRequest, "bad_request", "unsupported aspect ratio "+string(ratio))
			return
		}
	}
	// An absent resolution falls back to medium at dispatch.
	if req.Params.Resolution != "" && !req.Params.Resolution.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported resolution "+string(req.Params.Resolution))
		return
	}

	var selected domain.StylePreset
	if req.StyleID != "" && req.StyleID != domain.PresetNone {
		p, ok := a.Presets.Get(req.StyleID)
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown style preset")
			return
		}
		selected = p
	}

	tasks, err := a.Orch.SubmitBatch(r.Context(), orchestrator.SubmitRequest{
		Prompt:          req.Prompt,
		ReferenceImages: req.ReferenceImages,
		Params:          req.Params,
		Preset:          selected,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredential):
			a.error(w, http.StatusPreconditionFailed, "missing_credential", "configure a generation credential first")
		case errors.Is(err, domain.ErrEmptySelection):
			a.error(w, http.StatusBadRequest, "bad_request", "select at least one aspect ratio")
		default:
			a.error(w, http.StatusInternalServerError, "internal", "failed to submit batch")
		}
		return
	}

	// Remember the last-used parameters for the next session.
	if len(tasks) > 0 {
		if raw, err := json.Marshal(req.Params); err == nil {
			if err := a.Settings.Set(r.Context(), domain.SettingLastParams, string(raw)); err != nil {
				a.Logger.Warn().Err(err).Msg("failed to persist last params")
			}
		}
	}

	a.json(w, http.StatusAccepted, batchResponse{Tasks: tasks})
}

// RetryBatch re-submits one batch's tasks as a brand-new batch.
func (a *App) RetryBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batch_id")
	var original []domain.GenerationTask
	for _, t := range a.Orch.Tasks() {
		if t.BatchID == batchID {
			original = append(original, t)
		}
	}
	if len(original) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "batch not found")
		return
	}

	tasks, err := a.Orch.RetryBatch(r.Context(), original)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			a.error(w, http.StatusPreconditionFailed, "missing_credential", "configure a generation credential first")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to retry batch")
		return
	}
	a.json(w, http.StatusAccepted, batchResponse{Tasks: tasks})
}

// ListBatches returns the session task list grouped by batch.
func (a *App) ListBatches(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, orchestrator.GroupByBatch(a.Orch.Tasks()))
}

// ListBatchRatios returns one batch's tasks grouped by aspect ratio.
func (a *App) ListBatchRatios(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batch_id")
	var batch []domain.GenerationTask
	for _, t := range a.Orch.Tasks() {
		if t.BatchID == batchID {
			batch = append(batch, t)
		}
	}
	if len(batch) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "batch not found")
		return
	}
	a.json(w, http.StatusOK, orchestrator.GroupByRatio(batch))
}

// ListTasks returns the flat session task list.
func (a *App) ListTasks(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"tasks": a.Orch.Tasks()})
}

// DeleteTask removes a task from the session list; any in-flight call keeps
// running and its completion is dropped.
func (a *App) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "task_id")
	a.Orch.DeleteTask(id)
	w.WriteHeader(http.StatusNoContent)
}
