// Package ui exposes the colourizer over HTTP: upload a workbook or CSV
// with an instruction string, download the colourized workbook.
package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App represents the HTTP application
type App struct {
	router *chi.Mux
	config Config
}

// Config holds HTTP application configuration
type Config struct {
	Port string

	// HeaderRows is the header depth assumed for uploaded files.
	HeaderRows int

	// DefaultInstructions is used when a request omits the instructions
	// field.
	DefaultInstructions string
}

// NewApp creates a new HTTP application
func NewApp(config Config) *App {
	if config.HeaderRows < 1 {
		config.HeaderRows = 1
	}

	app := &App{
		router: chi.NewRouter(),
		config: config,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Post("/colourize", a.handleColourize)
}

// Router returns the HTTP handler for the application.
func (a *App) Router() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks.
func (a *App) Run() error {
	addr := ":" + a.config.Port
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}
