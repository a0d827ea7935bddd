// Package migrate applies the SQL files under migrations/ to PostgreSQL
// using golang-migrate. Files follow its NNNNNN_name.{up,down}.sql naming.
package migrate

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Direction selects which half of each migration runs.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ErrInvalidDirection is returned for anything other than Up or Down.
var ErrInvalidDirection = errors.New("direction must be up or down")

// Runner applies migrations from one directory to one database.
type Runner struct {
	m *migrate.Migrate
}

// New opens databaseURL with lib/pq and binds it to the migrations in dir.
func New(dir, databaseURL string) (*Runner, error) {
	srcURL, err := sourceURL(dir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(srcURL, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}

	return &Runner{m: m}, nil
}

// Run applies every pending migration (Up) or reverts every applied one
// (Down). Nothing to do is not an error.
func (r *Runner) Run(direction Direction) error {
	var err error
	switch direction {
	case Up:
		err = r.m.Up()
	case Down:
		err = r.m.Down()
	default:
		return ErrInvalidDirection
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

// Version returns the current schema version. ok is false when no
// migration has been applied yet.
func (r *Runner) Version() (version uint, dirty, ok bool, err error) {
	version, dirty, err = r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, true, nil
}

// Close releases the source and the database connection.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Versions lists the migration versions found in dir, ascending.
func Versions(dir string) ([]uint, error) {
	srcURL, err := sourceURL(dir)
	if err != nil {
		return nil, err
	}

	src, err := (&file.File{}).Open(srcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	defer src.Close()

	v, err := src.First()
	if err != nil {
		return nil, fmt.Errorf("failed to read first migration: %w", err)
	}

	versions := []uint{v}
	for {
		next, err := src.Next(v)
		if errors.Is(err, os.ErrNotExist) {
			return versions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read migration after %d: %w", v, err)
		}
		versions = append(versions, next)
		v = next
	}
}

func sourceURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve migrations dir: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
