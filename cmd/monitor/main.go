package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/config"
	"github.com/Chiggixo/EzyMedi/internal/dashboard"
	"github.com/Chiggixo/EzyMedi/internal/logger"
	"github.com/Chiggixo/EzyMedi/internal/monitor"
	"github.com/Chiggixo/EzyMedi/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	// wire dependencies
	client := monitor.NewNodeClient(cfg.Monitor.NodeURL, cfg.Monitor.RequestTimeout)
	session := monitor.NewSession(client, monitor.Options{
		Interval: cfg.Monitor.PollInterval,
		Thresholds: monitor.Thresholds{
			MaxHeartRate: cfg.Monitor.Thresholds.MaxHeartRate,
			MinSpO2:      cfg.Monitor.Thresholds.MinSpO2,
			MaxMotion:    cfg.Monitor.Thresholds.MaxMotion,
		},
		Log: log.Named("session"),
	})
	apiHandler := dashboard.NewHandler(session, cfg.Subjects, log)

	log.Infow("monitor configured",
		"node_url", cfg.Monitor.NodeURL,
		"poll_interval", cfg.Monitor.PollInterval)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Monitor.Port, apiHandler, log)

	waitForShutdown(session, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *dashboard.Handler, log *logger.Logger) {
	go func() {
		log.Infow("dashboard listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals, halts the polling session
// and then stops the HTTP server.
func waitForShutdown(session *monitor.Session, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down dashboard...")

	// halting the session first guarantees no poll lands after the server
	// stops answering
	session.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
