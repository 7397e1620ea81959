package database

import (
	"embed"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationsUp applies every embedded migration that has not run yet.
func MigrationsUp() error {
	if DB == nil {
		return errors.New("db not initialized")
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return errors.Wrap(err, "open embedded migrations")
	}

	driver, err := postgres.WithInstance(DB.DB, &postgres.Config{})
	if err != nil {
		return errors.Wrap(err, "create postgres migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, "create migration instance")
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		log.Println("migration state is up to date")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "run migrations")
	}

	log.Println("ran migrations successfully")
	return nil
}
