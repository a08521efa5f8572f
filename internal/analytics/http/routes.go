package analytichttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers the dashboard endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/", h.handleDashboard)
	r.Get("/tables", h.handleTables)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/export/csv", h.handleCSV)
		gr.Post("/charts/download", h.handleDownload)
		gr.Post("/charts/share", h.handleShare)
	})
	r.Get("/charts/share/{token}", func(w http.ResponseWriter, r *http.Request) {
		h.handleShared(w, r, chi.URLParam(r, "token"))
	})
}
