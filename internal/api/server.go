package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/processor"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/store"
)

const serviceName = "medical-ner-extraction"

// RunLister reads the extraction audit log. *store.Store satisfies it.
type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]store.Run, error)
}

type Options struct {
	Port        int
	APIToken    string
	CORSOrigins []string
	// Runs may be nil when the audit log is disabled.
	Runs RunLister
}

type Server struct {
	router *chi.Mux
	port   int
	proc   *processor.Processor
	reg    *category.Registry
	runs   RunLister
	logger *slog.Logger
}

func NewServer(proc *processor.Processor, reg *category.Registry, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{
		router: router,
		port:   opts.Port,
		proc:   proc,
		reg:    reg,
		runs:   opts.Runs,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/health", s.serviceHealth)
	router.Post("/api/extract", s.extract)
	router.Get("/api/categories", s.categories)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(opts.APIToken))
		r.Get("/runs", s.listRuns)
		r.Route("/review", func(r chi.Router) {
			r.Get("/", s.snapshot)
			r.Post("/transcript", s.submitTranscript)
			r.Post("/hover", s.hover)
			r.Delete("/hover", s.leave)
			r.Post("/click", s.click)
			r.Put("/filter", s.setFilter)
			r.Post("/sections/{key}/toggle", s.toggleSection)
			r.Post("/expand-all", s.expandAll)
			r.Post("/collapse-all", s.collapseAll)
		})
	})

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("API server shutdown", "error", err)
		}
	}()

	s.logger.Info("API server starting", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) serviceHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": serviceName})
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":    s.reg.Version,
		"categories": s.reg.All(),
	})
}
