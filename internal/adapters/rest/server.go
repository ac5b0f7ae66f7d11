package rest

import (
	"context"
	"net/http"

	core_port "listings-service/internal/core/port"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string, listingHandlers *ListingHandlers, baseLogger core_port.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Get("/health", listingHandlers.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// public pages
		r.Get("/listings", listingHandlers.GetPublishedListings)
		r.Get("/listings/{listingID}", listingHandlers.GetListing)

		// admin area
		r.Get("/admin/listings", listingHandlers.GetAllListings)
		r.Post("/admin/listings", listingHandlers.UpsertListing)
		r.Delete("/admin/listings/{listingID}", listingHandlers.DeleteListing)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
