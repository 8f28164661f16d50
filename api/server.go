package api

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/blog-service/config"
	"github.com/rpupo63/blog-service/database"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database, c map[string]string) (Server, error) {
	port := config.GetString(c, "PORT", "3000")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(database, withConfig(c), withStartupTime(startupTime))

	readTimeout := config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180)
	writeTimeout := config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180)
	idleTimeout := config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180)
	if readTimeout <= 0 || writeTimeout <= 0 {
		return Server{}, fmt.Errorf("read and write timeouts must be positive, got %s and %s", readTimeout, writeTimeout)
	}

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	assets      fs.FS
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withAssets(assets fs.FS) func(*router) {
	return func(r *router) {
		r.assets = assets
	}
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestIDMiddleware)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(middleware.StripSlashes)

	if acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS"); len(acceptedOrigins) > 0 {
		chiRouter.Use(corsMiddleware(acceptedOrigins))
	}

	if requestTimeout := config.GetSeconds(router.config, "REQUEST_TIMEOUT_SECONDS", 30); requestTimeout > 0 {
		chiRouter.Use(middleware.Timeout(requestTimeout))
	}

	maxBodyBytes := int64(config.GetInt(router.config, "MAX_BODY_BYTES", defaultMaxBodyBytes))
	handlers := initializeHandlers(database, maxBodyBytes, router.startupTime, router.assets)

	chiRouter.NotFound(routeNotFound)
	chiRouter.MethodNotAllowed(methodNotAllowed)
	setupRoutes(chiRouter, handlers)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
