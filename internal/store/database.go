package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // PostgreSQL driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

//go:embed seed/*.sql
var seedFS embed.FS

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Database wraps the PostgreSQL connection pool
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens and pings a PostgreSQL connection pool
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

// RunMigrations applies every embedded migration not yet recorded.
func (db *Database) RunMigrations() error {
	m, err := db.migrator()
	if err != nil {
		return err
	}

	log.Println("Running database migrations...")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("reading migration version: %w", err)
	}
	log.Printf("✓ Schema at version %d (dirty=%v)", version, dirty)
	return nil
}

// RollbackMigrations reverts every embedded migration.
func (db *Database) RollbackMigrations() error {
	m, err := db.migrator()
	if err != nil {
		return err
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rolling back migrations: %w", err)
	}
	log.Println("✓ Migrations rolled back")
	return nil
}

func (db *Database) migrator() (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db.conn, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("creating migrate driver: %w", err)
	}

	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("accessing migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("creating migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "propscope", driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}
	return m, nil
}

// SeedData loads the embedded teams and demo roster. Every statement is idempotent.
func (db *Database) SeedData() error {
	log.Println("Running seed data...")

	entries, err := fs.ReadDir(seedFS, "seed")
	if err != nil {
		return fmt.Errorf("listing seed files: %w", err)
	}

	for _, e := range entries {
		content, err := seedFS.ReadFile("seed/" + e.Name())
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", e.Name(), err)
		}

		if _, err := db.conn.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute seed file %s: %w", e.Name(), err)
		}

		log.Printf("  ✓ Seeded %s", e.Name())
	}

	log.Println("✓ Seed data completed successfully")
	return nil
}

// HealthCheck performs a health check on the database
func (db *Database) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
