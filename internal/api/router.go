package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"swiftAid/internal/api/handlers/http/admin"
	"swiftAid/internal/api/handlers/http/incidents"
	"swiftAid/internal/api/handlers/http/resources"
	"swiftAid/internal/api/handlers/http/stream"
	"swiftAid/internal/api/handlers/http/system"
	"swiftAid/internal/config"
	"swiftAid/internal/middleware"
	"swiftAid/internal/service"
)

// Deps are the collaborators the router needs besides the services.
type Deps struct {
	Hub      stream.Hub
	Identity middleware.ActorResolver
	Health   map[string]system.Pinger
}

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

type handlers struct {
	incidents *incidents.Handler
	resources *resources.Handler
	admin     *admin.Handler
	stream    *stream.Handler
	system    *system.Handler
}

func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, svc *service.Service, deps Deps) *Server {
	h := handlers{
		incidents: incidents.NewHandler(logger, svc.Incidents, svc.Lifecycle, svc.Stats),
		resources: resources.NewHandler(logger, svc.Hospitals, svc.Fleet),
		admin:     admin.NewHandler(logger, svc.Fleet, svc.Hospitals),
		stream:    stream.NewHandler(logger, deps.Hub, svc.Incidents, cfg.Http.AllowedOrigins),
		system:    system.NewHandler(logger, deps.Health),
	}

	return &Server{
		logger: logger,
		router: InitRouter(ctx, cfg, h, deps.Identity, logger),
		cfg:    *cfg,
	}
}

func InitRouter(ctx context.Context, cfg *config.Config, h handlers, identity middleware.ActorResolver, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.Metrics)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", h.system.SystemHealth)

		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey, logger))
			ar.Use(middleware.Limit(ctx, 2, 5, 10*time.Minute, logger))

			ar.Post("/ambulances", h.admin.AmbulanceCreate)
			ar.Get("/ambulances", h.admin.AmbulanceList)
			ar.Post("/hospitals", h.admin.HospitalCreate)
			ar.Get("/hospitals", h.admin.HospitalList)
		})

		// PORTALS
		api.Group(func(pr chi.Router) {
			pr.Use(middleware.Authenticate(identity, logger))

			pr.Route("/incidents", func(ir chi.Router) {
				ir.With(middleware.Limit(ctx, cfg.Http.CreateRPS, cfg.Http.CreateBurst, 5*time.Minute, logger)).
					Post("/", h.incidents.Create)
				ir.Get("/active", h.incidents.ListActive)

				ir.Route("/{id}", func(rr chi.Router) {
					rr.Get("/", h.incidents.Get)
					rr.Patch("/", h.incidents.Patch)
					rr.Post("/assign", h.incidents.Assign)
					rr.Post("/transitions", h.incidents.Transition)
				})
			})

			pr.Get("/dispatcher/stats", h.incidents.DispatcherStats)

			pr.Route("/hospitals/{id}", func(hr chi.Router) {
				hr.Get("/", h.resources.HospitalGet)
				hr.Post("/beds", h.resources.HospitalBeds)
				hr.Post("/blood", h.resources.HospitalBlood)
			})
			pr.Put("/ambulances/{id}/position", h.resources.AmbulancePosition)

			pr.Get("/subscribe", h.stream.Subscribe)
		})
	})

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:              port,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.Http.ReadTimeout,
		IdleTimeout:       30 * time.Second,
		// No WriteTimeout: subscribe streams are long-lived.
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
