// Package ui serves the calculator pages and the height visualizer
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"statcalc/adapters/stats/engine"
	"statcalc/internal"
	"statcalc/internal/chart"
	"statcalc/ports"
)

//go:embed templates/*.html templates/fragments/*.html static/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	engine    *engine.Engine
	catalog   ports.CatalogReader
	charts    *chart.Holder
	samples   ports.SourcePort // replaces the built-in sample heights when set
	templates *template.Template
	logger    *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	MaxBodyBytes int64
	// Samples, when set, supplies the data behind "Load sample"
	Samples ports.SourcePort
}

// NewApp creates a new UI application
func NewApp(config Config, eng *engine.Engine, catalog ports.CatalogReader, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := template.New("").Funcs(funcMap()).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		engine:    eng,
		catalog:   catalog,
		charts:    chart.NewHolder(),
		samples:   config.Samples,
		templates: templates,
		logger:    logger.With("UI"),
	}

	app.setupMiddleware(config.MaxBodyBytes)
	app.setupRoutes()

	return app, nil
}

// Handler returns the HTTP handler serving the UI
func (a *App) Handler() http.Handler {
	return a.router
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Calculators
	a.router.Get("/", a.handleIndex)
	a.router.Post("/calc/{operation}", a.handleCalculate)
	a.router.Post("/exercises/{id}/check", a.handleCheckExercise)

	// Height visualizer
	a.router.Get("/heights", a.handleHeights)
	a.router.Post("/heights", a.handleVisualize)
	a.router.Post("/heights/clear", a.handleClearHeights)
	a.router.Get("/heights/sample", a.handleSampleHeights)

	// Chart data for the browser renderer
	a.router.Get("/charts/active", a.handleActiveChart)
	a.router.Get("/charts/{id}", a.handleChart)
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
