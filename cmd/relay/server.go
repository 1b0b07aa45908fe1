package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/filerelay/service/internal/config"
	"github.com/filerelay/service/internal/expiry"
	"github.com/filerelay/service/internal/logging"
	appMiddleware "github.com/filerelay/service/internal/middleware"
	"github.com/filerelay/service/internal/relay"
	"github.com/filerelay/service/internal/response"
	"github.com/filerelay/service/internal/shortcode"
	"github.com/filerelay/service/internal/storage"

	_ "github.com/filerelay/service/docs/swagger"
)

const shutdownTimeout = 30 * time.Second

func serve(cfg *config.Config) error {
	log := logging.New(cfg.LogLevel, cfg.IsProduction())
	if !cfg.DotEnvLoaded {
		log.Debug().Msg("no .env file found, reading from environment")
	}

	// Wire dependencies: store → expiry → service → handler
	store := storage.NewStore()
	expirer := expiry.New(store, expiry.WithLogger(log))
	svc := relay.NewService(store, shortcode.NewRandom(), expirer, relay.WithLogger(log))
	relayHandler := relay.NewHandler(svc, cfg.PublicBaseURL, log)

	expiryCtx, stopExpiry := context.WithCancel(context.Background())
	expiryDone := make(chan struct{})
	go func() {
		expirer.Run(expiryCtx)
		close(expiryDone)
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg, log, svc, relayHandler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.AppEnv).
			Str("max_upload", humanize.IBytes(relay.MaxUploadBytes)).
			Dur("ttl", relay.DefaultTTL).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")
	case serveErr = <-errCh:
		log.Error().Err(serveErr).Msg("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	stopExpiry()
	<-expiryDone

	log.Info().Msg("server stopped")
	return serveErr
}

type healthResponse struct {
	Status    string `json:"status"    example:"ok"`
	Objects   int    `json:"objects"   example:"3"`
	Scheduled int    `json:"scheduled" example:"3"`
}

// health godoc
//
//	@Summary		Health check
//	@Description	Report liveness with the number of stored objects and pending expiry deadlines.
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	healthResponse
//	@Router			/health [get]
func health(svc *relay.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := svc.Stats()
		response.OK(w, healthResponse{Status: "ok", Objects: st.Objects, Scheduled: st.Scheduled})
	}
}

func newRouter(cfg *config.Config, log zerolog.Logger, svc *relay.Service, relayHandler *relay.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", health(svc))

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	relayHandler.Routes(r)
	return r
}
