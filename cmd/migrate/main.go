// Command migrate applies or reverts the PostgreSQL account schema.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/accountd/accountd/internal/migrate"
)

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		dir         = flag.String("dir", "migrations", "Directory holding NNNNNN_name.{up,down}.sql files")
		direction   = flag.String("direction", "up", "up or down")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *databaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	runner, err := migrate.New(*dir, *databaseURL)
	if err != nil {
		logger.Error("failed to init migrations", "error", err)
		os.Exit(1)
	}
	defer runner.Close()

	if err := runner.Run(migrate.Direction(*direction)); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	version, dirty, ok, err := runner.Version()
	if err != nil {
		logger.Error("failed to read schema version", "error", err)
		os.Exit(1)
	}
	if !ok {
		logger.Info("migrations complete", "direction", *direction, "version", "none")
		return
	}
	logger.Info("migrations complete", "direction", *direction, "version", version, "dirty", dirty)
}
