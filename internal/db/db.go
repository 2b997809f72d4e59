// Package db stores contact submissions in SQLite.
package db

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Repository runs the contact queries against an open connection.
type Repository struct {
	dbConn *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{dbConn: db}
}

// Close terminates the database connection.
func (repo *Repository) Close() error {
	if err := repo.dbConn.Close(); err != nil {
		return fmt.Errorf("closing repo : %w", err)
	}
	return nil
}

// New opens the SQLite file at name in WAL mode and applies pending migrations.
func New(name string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn(name))
	if err != nil {
		return nil, fmt.Errorf("connecting to db : %w", err)
	}

	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect for migrations : %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migration : %w", err)
	}
	return db, nil
}

// dsn sets WAL, a 5s busy timeout and foreign keys on every connection.
func dsn(name string) string {
	return name + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// Open is New followed by NewRepository.
func Open(name string) (*Repository, error) {
	conn, err := New(name)
	if err != nil {
		return nil, err
	}
	return NewRepository(conn), nil
}
