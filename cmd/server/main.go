// Package main wires the flight search server together and runs it.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/InonKadosh/travel-server/internal/auth"
	"github.com/InonKadosh/travel-server/internal/config"
	"github.com/InonKadosh/travel-server/internal/httpx"
	"github.com/InonKadosh/travel-server/internal/providers"
	"github.com/InonKadosh/travel-server/internal/service"
)

func main() {
	cfg := config.Load()

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// One token cache for the whole process; every search shares it.
	amadeus := providers.NewAmadeus(cfg, providers.NewTokenCache())
	searchSvc := service.NewSearchService(amadeus, cfg.SearchTimeout)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpx.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	// Public: health probe and login to get a JWT.
	r.Get("/healthz", httpx.HealthHandler())
	r.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected: search plus the subscription streams.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg))
		r.Post("/api/flights", httpx.SearchHandler(searchSvc))
		r.Get("/sse/{origin}/{destination}", httpx.SubscribeSSEHandler(searchSvc, cfg.StreamInterval))
		r.Get("/ws/{origin}/{destination}", httpx.SubscribeWSHandler(searchSvc, cfg.StreamInterval))
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0, // streams stay open indefinitely
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		var err error
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			slog.Info("TLS enabled")
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
