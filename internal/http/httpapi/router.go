package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/songofhawk/Giga-Peach/internal/http/handlers"
	"github.com/songofhawk/Giga-Peach/internal/middleware"
)

// NewRouter assembles the REST surface over the handler container.
func NewRouter(app *handlers.App, allowedOrigins []string) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(allowedOrigins))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/batches", func(r chi.Router) {
		r.Post("/", app.SubmitBatch)
		r.Get("/", app.ListBatches)
		r.Post("/{batch_id}/retry", app.RetryBatch)
		r.Get("/{batch_id}/ratios", app.ListBatchRatios)
	})

	r.Route("/v1/tasks", func(r chi.Router) {
		r.Get("/", app.ListTasks)
		r.Delete("/{task_id}", app.DeleteTask)
	})

	r.Route("/v1/gallery", func(r chi.Router) {
		r.Get("/", app.ListGallery)
		r.Get("/selected", app.SelectedImage)
		r.Post("/{image_id}/favorite", app.ToggleFavorite)
		r.Post("/{image_id}/select", app.SelectImage)
		r.Delete("/{image_id}", app.DeleteGalleryImage)
	})

	r.Route("/v1/presets", func(r chi.Router) {
		r.Get("/", app.ListPresets)
		r.Put("/", app.SavePreset)
		r.Delete("/{preset_id}", app.DeletePreset)
	})

	r.Route("/v1/settings", func(r chi.Router) {
		r.Get("/", app.GetSettings)
		r.Put("/", app.PutSettings)
	})

	r.Route("/v1/staging", func(r chi.Router) {
		r.Get("/", app.GetStaging)
		r.Put("/", app.PutStaging)
	})

	return r
}
