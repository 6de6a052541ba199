package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphandlers "github.com/agroinform/prices-web/pkg/handlers/app"
	statehandlers "github.com/agroinform/prices-web/pkg/handlers/state"
	pricesmiddleware "github.com/agroinform/prices-web/pkg/server/middleware"
	"github.com/agroinform/prices-web/pkg/services/analytics"
	"github.com/agroinform/prices-web/pkg/services/config"
	"github.com/agroinform/prices-web/pkg/services/page"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Config    *config.Config
	Store     statehandlers.Store
	Document  *page.Document
	DataLayer *analytics.Holder
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// ReportMaxAge marks the cached weekly report as stale once exceeded.
	ReportMaxAge time.Duration
	Dependencies Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	stateHandler := statehandlers.NewHandler(deps.Store, config.ReportMaxAge)
	appHandler := apphandlers.NewHandler(deps.Config, deps.Document, deps.DataLayer)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(pricesmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/config", appHandler.RuntimeConfig)

		r.Route("/state", func(r chi.Router) {
			r.Get("/", stateHandler.GetState)
			r.Get("/events", stateHandler.Events)
			r.Put("/country", stateHandler.SetCountryID)
			r.Put("/loading", stateHandler.SetLoading)

			r.Get("/weekly-report", stateHandler.GetWeeklyReport)
			r.Patch("/weekly-report", stateHandler.MergeWeeklyReport)
			r.Delete("/weekly-report", stateHandler.ClearWeeklyReport)
		})
	})

	router.Get("/*", appHandler.Shell)

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
