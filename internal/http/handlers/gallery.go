package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

// ListGallery returns every persisted image.
func (a *App) ListGallery(w http.ResponseWriter, r *http.Request) {
	if err := a.Orch.RefreshGallery(r.Context()); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load gallery")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"images": a.Orch.Gallery()})
}

// ToggleFavorite flips the favorite flag on one gallery record.
func (a *App) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "image_id")
	img, ok := a.findImage(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "image not found")
		return
	}
	updated, err := a.Orch.ToggleFavorite(r.Context(), img)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update favorite")
		return
	}
	a.json(w, http.StatusOK, updated)
}

// DeleteGalleryImage removes one record from the store and every view.
func (a *App) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "image_id")
	if err := a.Orch.DeleteGalleryImage(r.Context(), id); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectImage marks one record as open in the detail view.
func (a *App) SelectImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "image_id")
	if err := a.Orch.Select(id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "image not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectedImage returns the record open in the detail view, if any.
func (a *App) SelectedImage(w http.ResponseWriter, r *http.Request) {
	img, ok := a.Orch.Selected()
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "no image selected")
		return
	}
	a.json(w, http.StatusOK, img)
}

func (a *App) findImage(id string) (domain.GeneratedImage, bool) {
	for _, img := range a.Orch.Gallery() {
		if img.ID == id {
			return img, true
		}
	}
	// The record may have been generated by another process since the last
	// refresh.
	for _, t := range a.Orch.Tasks() {
		if t.Data != nil && t.Data.ID == id {
			return *t.Data, true
		}
	}
	return domain.GeneratedImage{}, false
}
