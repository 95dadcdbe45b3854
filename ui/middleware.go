package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// setupMiddleware configures HTTP middleware and static file serving
func (a *App) setupMiddleware(maxBodyBytes int64) {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	if maxBodyBytes > 0 {
		a.router.Use(limitBody(maxBodyBytes))
	}

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		a.logger.Error("failed to create static filesystem: %v", err)
		return
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

// limitBody caps form posts; ParseForm fails once the limit is crossed
func limitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
