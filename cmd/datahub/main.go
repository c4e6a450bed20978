package main

import (
	"fmt"
	"os"
	"path/filepath"

	"datahub/config"
	"datahub/internal/adapters/rest"
	"datahub/internal/delivery/cli"
	"datahub/internal/repository/badgerdb"
	"datahub/internal/services"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	// Logs go to a file: the interactive UI owns the terminal.
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "datahub.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile)

	sessionRepo, err := badgerdb.Open(filepath.Join(cfg.DataDir, "session"))
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessionRepo.Close()

	apiClient := rest.NewClient(cfg.APIBaseURL, nil, logger)
	session := services.NewSession(rest.NewAccountClient(apiClient), sessionRepo, logger)

	root := cli.NewRootCmd(&cli.Deps{
		Session:     session,
		Files:       rest.NewFileClient(apiClient),
		Collections: rest.NewCollectionClient(apiClient),
		Tags:        rest.NewTagClient(apiClient),
		Users:       rest.NewUserClient(apiClient),
		Logger:      logger,
	})
	return root.Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
