// Package server boots the storefront: config, database, cache, storage,
// audit trail, queue workers, the WebSocket hub, the gRPC health server
// and the HTTP stack, then runs until SIGINT/SIGTERM.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/graphql"
	"github.com/shashiranjanraj/crafthaven/app/jobs"
	"github.com/shashiranjanraj/crafthaven/app/routes"
	"github.com/shashiranjanraj/crafthaven/config"
	"github.com/shashiranjanraj/crafthaven/pkg/audit"
	"github.com/shashiranjanraj/crafthaven/pkg/cache"
	"github.com/shashiranjanraj/crafthaven/pkg/database"
	"github.com/shashiranjanraj/crafthaven/pkg/grpcserver"
	"github.com/shashiranjanraj/crafthaven/pkg/logger"
	"github.com/shashiranjanraj/crafthaven/pkg/metrics"
	"github.com/shashiranjanraj/crafthaven/pkg/middleware"
	"github.com/shashiranjanraj/crafthaven/pkg/migration"
	"github.com/shashiranjanraj/crafthaven/pkg/queue"
	"github.com/shashiranjanraj/crafthaven/pkg/reqid"
	"github.com/shashiranjanraj/crafthaven/pkg/router"
	"github.com/shashiranjanraj/crafthaven/pkg/storage"
	"github.com/shashiranjanraj/crafthaven/pkg/ws"
)

// Start boots every subsystem and blocks until shutdown.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	db := database.DB

	if err := migration.New(db).Run(); err != nil {
		return err
	}

	// Redis and Mongo are optional: the storefront degrades rather
	// than refuses to start.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}
	if err := audit.Connect(config.MongoURI()); err != nil {
		logger.Warn("audit trail unavailable, continuing without it", "error", err)
	}
	defer audit.Close()

	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background workers: prefer the durable Redis queue when available.
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(db)
	queue.StartWorkers(ctx, 5)

	hub := ws.NewHub()
	go hub.Run()
	jobs.Boot(hub)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	schema, err := graphql.NewSchema(db)
	if err != nil {
		return err
	}
	r.HandleFunc("/graphql", graphql.Handler(schema))

	routes.RegisterAPI(r, db, hub)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
