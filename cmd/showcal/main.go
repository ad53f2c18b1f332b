package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/showcal/internal/config"
	"github.com/javiermolinar/showcal/internal/tui"
	"github.com/javiermolinar/showcal/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	repo, err := tui.OpenRepo(cfg.Storage.DBPath)
	if err != nil {
		return err
	}

	app := ui.NewApp(repo, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
