// Command contactd serves the contact API over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/csheth/webmodels/internal/app"
	"github.com/csheth/webmodels/internal/config"
	"github.com/csheth/webmodels/internal/contact"
	"github.com/csheth/webmodels/internal/contact/httpapi"
	"github.com/csheth/webmodels/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "contactd")
	if err != nil {
		log.Printf("[main] tracing disabled: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(flushCtx)
	}()

	store, closer, err := app.OpenStore(cfg.Store)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closer.Close()

	handler := httpapi.New(contact.NewService(store))
	if err := httpapi.ListenAndServe(ctx, cfg.Server.Addr, handler); err != nil {
		log.Printf("[main] %v", err)
		os.Exit(1)
	}
}
