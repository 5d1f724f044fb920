// Package ui exposes the reporting pipeline over HTTP as a small JSON API.
package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/simone-mordue/papaja/app"
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/domain/core"
	"github.com/simone-mordue/papaja/internal"
	"github.com/simone-mordue/papaja/internal/config"
)

// App represents the report API application
type App struct {
	router  *chi.Mux
	printer *app.Printer
	tags    []string
	logger  *internal.Logger
}

// Config holds API application configuration
type Config struct {
	Port     string
	Options  config.Options
	Registry *app.Registry
	Labels   apa.Labels
}

// NewApp creates a new report API application
func NewApp(cfg Config) (*App, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("ui: registry is required")
	}
	printer, err := app.NewPrinter(cfg.Registry, cfg.Options, cfg.Labels)
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}

	tags := make([]string, 0)
	for _, t := range cfg.Registry.Tags() {
		tags = append(tags, string(t))
	}
	sort.Strings(tags)

	a := &App{
		router:  chi.NewRouter(),
		printer: printer,
		tags:    tags,
		logger:  internal.NewDefaultLogger("ui"),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/v1/variants", a.handleVariants)
	a.router.Post("/v1/report", a.handleReport)
	a.router.Post("/v1/reports", a.handleReportBatch)
}

// Start starts the HTTP server
func (a *App) Start(port string) error {
	if port == "" {
		port = ":8080"
	}
	a.logger.Info("starting report API server on %s", port)
	return http.ListenAndServe(port, a.router)
}

// Router returns the configured router, for embedding and tests.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVariants lists the variant tags the dispatcher can resolve.
func (a *App) handleVariants(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string][]string{"variants": a.tags})
}

// handleReport converts one posted analysis result into report strings.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	result, err := DecodeRequest(r.Body)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := a.printer.Print(result)
	if err != nil {
		a.writeError(w, statusFor(err), err)
		return
	}

	a.writeJSON(w, http.StatusOK, reportEnvelope{
		ID:     string(core.NewReportID()),
		Tag:    string(result.Tag()),
		Report: report,
	})
}

// handleReportBatch converts a posted list of analysis results. Items that
// fail keep their slot with an error message instead of a report.
func (a *App) handleReportBatch(w http.ResponseWriter, r *http.Request) {
	results, err := DecodeBatchRequest(r.Body)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	reports, errs := a.printer.PrintAll(r.Context(), results)

	items := make([]batchItem, len(results))
	for i := range results {
		items[i].Tag = string(results[i].Tag())
		if errs[i] != nil {
			items[i].Error = errs[i].Error()
			continue
		}
		items[i].ID = string(core.NewReportID())
		items[i].Report = reports[i]
	}
	a.writeJSON(w, http.StatusOK, map[string][]batchItem{"reports": items})
}

type reportEnvelope struct {
	ID     string      `json:"id"`
	Tag    string      `json:"tag"`
	Report *apa.Result `json:"report"`
}

type batchItem struct {
	ID     string      `json:"id,omitempty"`
	Tag    string      `json:"tag"`
	Report *apa.Result `json:"report,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case core.IsUnsupportedVariantError(err):
		return http.StatusUnprocessableEntity
	case core.IsDomainError(err), core.IsInvalidTermError(err), core.IsMissingFieldError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	a.logger.Warn("request failed: %v", err)
	a.writeJSON(w, status, map[string]string{"error": err.Error()})
}
