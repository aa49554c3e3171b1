package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/config"
	"github.com/Chiggixo/EzyMedi/internal/handlers"
	"github.com/Chiggixo/EzyMedi/internal/logger"
	"github.com/Chiggixo/EzyMedi/internal/repository"
	"github.com/Chiggixo/EzyMedi/internal/repository/db"
	"github.com/Chiggixo/EzyMedi/internal/server"
	"github.com/Chiggixo/EzyMedi/internal/service"

	_ "github.com/Chiggixo/EzyMedi/docs"
)

const shutdownTimeout = 10 * time.Second

// @title EzyMedi Clinical Validation Node API
// @version 1.0
// @description Ingest and query API for the EzyMedi vitals ledger.
// @host localhost:5001
// @BasePath /
func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	store, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(store)
	services := service.NewService(repos, service.Options{
		ProgressGoal: cfg.Node.ProgressGoal,
		Subjects:     cfg.Subjects,
		Log:          log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Node.Simulator.Enabled {
		go services.Simulator.Run(ctx, cfg.Node.Simulator.Tick)
	}

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Node.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

// openDB opens the sqlite store backing the vitals ledger.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening vitals store", "path", cfg.Node.DBPath)
	return db.InitDB(cfg.Node.DBPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("clinical node listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down node...")

	// stop the simulator before the listener so no writes race the close
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
