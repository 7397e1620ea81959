package database

import (
	"log"
	"net/url"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/odm275/dev-network/internal/config"
)

var DB *sqlx.DB

// InitDB initializes the database connection
func InitDB(cfg config.Config) error {
	log.Printf("Connecting to database: %s", redactURL(cfg.DatabaseURL))

	conn, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}

	conn.SetMaxOpenConns(cfg.DBMaxOpenConns)
	conn.SetMaxIdleConns(cfg.DBMaxIdleConns)
	conn.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)
	conn.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	DB = conn
	log.Println("Connected to database successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}

func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "<unparseable database url>"
	}
	return parsed.Redacted()
}
