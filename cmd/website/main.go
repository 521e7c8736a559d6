package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/auteur-engineer/website"
	"github.com/auteur-engineer/website/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("website: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("website", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (defaults plus SITE_* env when empty)")
	addr := fs.String("addr", "", "Listen address, overrides server.addr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := website.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	module, err := website.New(cfg)
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	logger := logging.ModuleLogger(module.LoggerProvider(), "site")

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      module.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.Server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = module.Close(context.Background())
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("server.shutting_down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}
	if err := module.Close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("close module: %w", err))
	}
	logger.Info("server.stopped")
	return errors.Join(errs...)
}
