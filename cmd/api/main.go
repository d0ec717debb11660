package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoSim-25-26J-441/items-api/config"
	"github.com/GoSim-25-26J-441/items-api/internal/bootstrap"
	"github.com/GoSim-25-26J-441/items-api/internal/items/repository"
	"github.com/GoSim-25-26J-441/items-api/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		Config:      &cfg.Database,
		AutoMigrate: cfg.Database.AutoMigrate,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.Name,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             db,
		Items:          repository.NewRepo(db),
		Metrics:        metrics.NewManager(metrics.WithRuntimeCollectors()),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (env=%s, driver=%s)", srv.Addr, cfg.App.Environment, cfg.Database.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	case <-ctx.Done():
		log.Println("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
