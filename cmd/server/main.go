package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/you/go-travel-search/internal/amadeus"
	"github.com/you/go-travel-search/internal/auth"
	"github.com/you/go-travel-search/internal/config"
	"github.com/you/go-travel-search/internal/httpx"
	"github.com/you/go-travel-search/internal/logger"
	"github.com/you/go-travel-search/internal/metrics"
	"github.com/you/go-travel-search/internal/service"
)

const subscribeInterval = 30 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New()
	m := metrics.New("travel_search")

	// One credential cache for the whole process, shared by every search.
	cache := amadeus.NewTokenCache()
	client := amadeus.NewClient(cfg, cache, log, m)
	searchSvc := service.NewSearchService(client, cfg.SearchTimeout, log, m)

	mux := http.NewServeMux()
	mux.HandleFunc("/flights/search", httpx.SearchHandler(searchSvc, log))
	mux.HandleFunc("/sse/", httpx.SubscribeSSEHandler(searchSvc, log, subscribeInterval)) // /sse/AMS/BCN?date=2025-10-01
	mux.HandleFunc("/ws/", httpx.SubscribeWSHandler(searchSvc, log, subscribeInterval))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var root http.Handler = mux
	if cfg.JWTSecret != "" {
		publicMux := http.NewServeMux()
		publicMux.HandleFunc("/auth/login", auth.LoginHandler(cfg))
		root = auth.JWTMiddleware(publicMux, mux, cfg, log)
	}
	root = httpx.RequestID(httpx.AccessLog(log, root))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           root,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0, // SSE and websocket streams stay open
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "tls", cfg.TLSCertFile != "")
		var err error
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-stop:
			log.Info("shutting down", "signal", sig.String())
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
