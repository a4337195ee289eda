package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	attendancehandlers "github.com/cm-tools/church-admin/pkg/handlers/attendance"
	directoryhandlers "github.com/cm-tools/church-admin/pkg/handlers/directory"
	reporthandlers "github.com/cm-tools/church-admin/pkg/handlers/reports"
	churchadminmiddleware "github.com/cm-tools/church-admin/pkg/server/middleware"
	"github.com/cm-tools/church-admin/pkg/services/access"
	"github.com/cm-tools/church-admin/pkg/store/memory/attendance"
	"github.com/cm-tools/church-admin/pkg/store/memory/directory"
	"github.com/cm-tools/church-admin/pkg/store/memory/report"
)

type Dependencies struct {
	Attendance attendance.Store
	Reports    report.Store
	Directory  directory.Store
	Access     access.Checker
	Logger     zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	attendanceHandler := attendancehandlers.NewHandler(deps.Attendance, deps.Access)
	reportsHandler := reporthandlers.NewHandler(deps.Reports, deps.Access)
	directoryHandler := directoryhandlers.NewHandler(deps.Directory)

	router := chi.NewRouter()

	router.Use(churchadminmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", attendanceHandler.Routes)
		r.Route("/reports", reportsHandler.Routes)
		r.Get("/people", directoryHandler.ListPeople)
		r.Get("/events", directoryHandler.ListEvents)
	})

	return router
}

type WebAPI struct {
	logger *zerolog.Logger
	server *http.Server
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
