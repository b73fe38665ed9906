package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tlsn-go/witnessgen/internal/config"
	"github.com/tlsn-go/witnessgen/internal/logger"
	"github.com/tlsn-go/witnessgen/internal/metrics"
	"github.com/tlsn-go/witnessgen/internal/status"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the status/metrics HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg := config.Load()
	log := logger.New("STATUS", cfg.LogLevel)
	m := metrics.New()

	printBanner(cfg)

	srv := status.New(cfg, m, log)
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.StatusPort),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutdown", "shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Errorf("shutdown", "shutdown error: %v", err)
		}
	}()

	log.Infof("listen", "status server listening on %s", httpSrv.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func printBanner(cfg *config.Config) {
	fmt.Printf(`
╔══════════════════════════════════════════════════════╗
║          witnessgen  (Go)                             ║
╚══════════════════════════════════════════════════════╝
  Bind address     : %s
  Status port      : %d
  Max stack height : %d
  Cache backend    : %s

  Check status:
    curl http://%s:%d/status
`, cfg.BindAddress, cfg.StatusPort, cfg.MaxStackHeight, cfg.CacheBackend,
		cfg.BindAddress, cfg.StatusPort)
}
