package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/showcal/internal/config"
	"github.com/javiermolinar/showcal/internal/db"
)

// InitState describes what a first run is missing.
type InitState struct {
	ConfigMissing bool
	NoShows       bool
	ConfigPath    string
}

// DetectInitState checks for a missing config file and an empty tracked list.
func DetectInitState(cfg *config.Config, configPath string) (InitState, error) {
	state := InitState{ConfigPath: configPath}
	if cfg == nil || len(cfg.Shows.Tracked) == 0 {
		state.NoShows = true
	}

	missing, err := pathMissing(configPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	state.ConfigMissing = missing
	return state, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

// OpenRepo opens the SQLite store at dbPath, creating its directory first.
func OpenRepo(dbPath string) (*db.SQLite, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
