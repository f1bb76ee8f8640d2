// Package storage persists the ledger in a local SQLite database through gorm.
package storage

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tenant-ledger/internal/logger"
)

// Options configures Open.
type Options struct {
	Path     string // database file, or ":memory:"
	Logger   logger.Logger
	TraceSQL bool // log every statement at debug level
}

// DB is the open ledger database.
type DB struct {
	gorm  *gorm.DB
	sqlDB *sql.DB
	log   logger.Logger

	tenants    *TenantStore
	payments   *PaymentStore
	documents  *DocumentStore
	properties *PropertyStore
}

// dsn enables foreign key enforcement, which SQLite leaves off by default.
func dsn(path string) string {
	if path == ":memory:" || path == "" {
		return "file::memory:?_foreign_keys=on"
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// Open opens the database at opts.Path and applies pending migrations.
func Open(opts Options) (*DB, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	gdb, err := gorm.Open(sqlite.Open(dsn(opts.Path)), &gorm.Config{
		Logger: logger.NewGormLogger(log, opts.TraceSQL),
	})
	if err != nil {
		return nil, ErrDatabase.MsgErr("failed to open database "+opts.Path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, ErrDatabase.Err(err)
	}
	// A single connection keeps :memory: databases alive and serialises writes.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{gorm: gdb, sqlDB: sqlDB, log: log}
	db.tenants = &TenantStore{db: gdb, log: log}
	db.payments = &PaymentStore{db: gdb, log: log}
	db.documents = &DocumentStore{db: gdb, log: log}
	db.properties = &PropertyStore{db: gdb, log: log}

	applied, err := db.Migrate()
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("Storage", "database ready", map[string]interface{}{
		"path":               opts.Path,
		"migrations_applied": len(applied),
	})
	return db, nil
}

// Migrate applies the pending ledger migrations.
func (db *DB) Migrate() ([]string, error) {
	m := db.Migrator()
	applied, err := m.Up()
	if err != nil {
		db.log.Error("Storage", err, map[string]interface{}{"applied": applied})
		return applied, err
	}
	return applied, nil
}

// Migrator returns a migrator loaded with the ledger migrations.
func (db *DB) Migrator() *Migrator {
	m := NewMigrator(db.gorm)
	m.Register(LedgerMigrations()...)
	return m
}

func (db *DB) Tenants() *TenantStore      { return db.tenants }
func (db *DB) Payments() *PaymentStore    { return db.payments }
func (db *DB) Documents() *DocumentStore  { return db.documents }
func (db *DB) Properties() *PropertyStore { return db.properties }

// Ping checks the connection is usable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.sqlDB.PingContext(ctx); err != nil {
		return ErrDatabase.Err(err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// Shutdown closes the database for the shutdown manager.
func (db *DB) Shutdown() {
	if err := db.Close(); err != nil {
		db.log.Error("Storage", err, nil)
		return
	}
	db.log.Info("Storage", "database closed", nil)
}
