package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/tripplan/internal/cli"
	"github.com/alexanderramin/tripplan/internal/config"
	"github.com/alexanderramin/tripplan/internal/db"
	"github.com/alexanderramin/tripplan/internal/logging"
	"github.com/alexanderramin/tripplan/internal/repository"
	"github.com/alexanderramin/tripplan/internal/service"
	"github.com/alexanderramin/tripplan/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		RunID:      logging.NewRunID(),
		Timestamps: cfg.LogTimestamps,
	})
	if cfg.Source != "" {
		logger.Debug("loaded config", "path", cfg.Source)
	}

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		// Storage opens after flag parsing so --db can override the config.
		Connect: func(dbPath string) (service.TaskService, error) {
			if dbPath == "" {
				dbPath = cfg.DBPath
			}
			conn, err := db.OpenDB(dbPath)
			if err != nil {
				return nil, err
			}
			database = conn
			logger.Debug("opened database", "path", dbPath, "namespace", cfg.Namespace)

			st := store.New(
				repository.NewSQLitePreferenceRepo(database),
				store.WithNamespace(cfg.Namespace),
				store.WithLogger(logger),
			)
			uow := db.NewSQLiteUnitOfWork(database)
			return service.NewTaskService(st, uow, service.NewLogUseCaseObserver(logger)), nil
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
