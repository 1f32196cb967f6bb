package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staffdeck/internal/api"
	"staffdeck/internal/bootstrap"
	"staffdeck/internal/config"
	"staffdeck/internal/domain"
	"staffdeck/internal/eventbus"
	"staffdeck/internal/session"
	"staffdeck/internal/ui"
)

func main() {
	// Parse command line arguments
	var baseURL string
	var metricsAddr string
	flag.StringVar(&baseURL, "api", "", "Base URL of the HR API (overrides config)")
	flag.StringVar(&metricsAddr, "metrics", "", "Listen address for /metrics (overrides config)")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("staffdeck.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	configSvc := config.NewService()
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Could not load config, using defaults: %v", err)
		cfg = config.Default()
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if metricsAddr != "" {
		cfg.UISettings.MetricsAddress = metricsAddr
	}

	// Expose the search and API counters when an operator asks for them
	if addr := cfg.UISettings.MetricsAddress; addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("Metrics listening on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("Metrics listener stopped: %v", err)
			}
		}()
	}

	// Initialize services
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout(),
		api.WithSearchCache(cfg.Search.CacheSize))
	store := session.NewStore()
	warmup := bootstrap.NewService(client, bus)

	// Create event channel for UI
	eventChan := make(chan tea.Msg, 100)

	emit := func(msg tea.Msg) {
		select {
		case eventChan <- msg:
		default:
			log.Println("Event channel full, dropping message")
		}
	}

	// Create UI model
	uiModel := ui.NewModel(client, bus, cfg, store, warmup, emit)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward the domain events the UI reacts to
	forward := func(e domain.DomainEvent) {
		emit(ui.EventMsg{Event: e})
	}
	bus.Subscribe(domain.EventNoticeRaised, forward)
	bus.Subscribe(domain.EventError, forward)
	bus.Subscribe(domain.EventWarmupCompleted, forward)

	// Start forwarding messages to the UI in the background
	go func() {
		for msg := range eventChan {
			p.Send(msg)
		}
	}()

	// Quit the program when the context is cancelled (signal received)
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	warmup.Stop()
}
