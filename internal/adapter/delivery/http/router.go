// Package http provides the HTTP delivery layer for the URL shortener service.
// This package contains the HTTP handlers and related types used for processing
// incoming requests, validating input, and formatting responses.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/flashurl/docs"
	"github.com/vadimbarashkov/flashurl/internal/metrics"
	"github.com/vadimbarashkov/flashurl/web"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes and returns a new Chi router configured with middleware and routes
// for the URL shortener. Short URLs in responses are built from baseURL.
func NewRouter(
	logger *httplog.Logger,
	m *metrics.Metrics,
	baseURL string,
	urlUseCase urlUseCase,
	qrRenderer qrRenderer,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer)
	r.Use(m.Middleware)

	r.Get("/", handleIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	r.Get("/ping", handlePing)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(docs.Swagger)
	})

	validate := newValidate()

	qh := newQRHandler(qrRenderer, validate)
	r.Get("/qr", qh.generateQR)

	uh := newURLHandler(urlUseCase, validate, baseURL)
	r.With(middleware.AllowContentType("application/json")).Post("/shorten", uh.shortenURL)
	r.Get("/{shortCode}", uh.redirect)

	return r
}
