package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmartins/livraria/internal/backup"
	"github.com/mmartins/livraria/internal/catalog"
	"github.com/mmartins/livraria/internal/config"
	"github.com/mmartins/livraria/internal/log"
	"github.com/mmartins/livraria/internal/service"
	"github.com/mmartins/livraria/internal/transfer"
	"github.com/mmartins/livraria/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("livraria %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting livraria", "version", Version)

	// Open the catalog store
	store, err := catalog.Open(cfg.DatabasePath(), logger)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	// Backup manager and CSV transfer
	backups, err := backup.NewManager(cfg.Backup.Dir, cfg.Backup.MaxKeep, logger)
	if err != nil {
		return fmt.Errorf("failed to create backup manager: %w", err)
	}
	csv, err := transfer.NewCSV(cfg.Export.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	// Service layer
	svc := service.New(store, backups, csv, logger)

	// Run the TUI
	model := tui.NewModel(svc)
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
