package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/webmodels/internal/app"
	"github.com/csheth/webmodels/internal/config"
	"github.com/csheth/webmodels/internal/contact"
	"github.com/csheth/webmodels/internal/navigator"
	"github.com/csheth/webmodels/internal/telemetry"
	"github.com/csheth/webmodels/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: config.yaml in the user config dir)")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	storeKind := flag.String("store", "", "contact store backend: sqlite or json")
	storePath := flag.String("store-path", "", "contact store location")
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if *storeKind != "" {
		os.Setenv("WEBMODELS_STORE_KIND", *storeKind)
	}
	if *storePath != "" {
		os.Setenv("WEBMODELS_STORE_PATH", *storePath)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "webmodels")
		if err != nil {
			fmt.Println("failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "webmodels")
	if err != nil {
		log.Printf("[main] tracing disabled: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(flushCtx)
	}()

	var submitter tui.Submitter
	store, closer, err := app.OpenStore(cfg.Store)
	if err != nil {
		fmt.Println("contact form disabled:", err)
	} else {
		defer closer.Close()
		submitter = contact.NewService(store)
	}

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Contact: submitter,
			Preview: app.NewFetcher(cfg.Preview),
			Durations: navigator.Durations{
				Desktop: cfg.Navigator.DesktopDuration,
				Mobile:  cfg.Navigator.MobileDuration,
			},
			Breakpoints: navigator.Breakpoints{
				MobileWidth: cfg.Navigator.MobileWidth,
				ShortHeight: cfg.Navigator.ShortHeight,
			},
			SwipeThreshold: cfg.Navigator.SwipeThreshold,
			JobTimeout:     cfg.Preview.Timeout,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
